package mockdata

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/zmfmock/server/domain"

	"go.uber.org/zap"
)

// Resource type names accepted on the /zmfrest/{resource} path.
const (
	ResourceProgram   = "program"
	ResourceComponent = "component"
	ResourcePackage   = "package"
	ResourceBaseline  = "baseline"
	ResourceDataset   = "dataset"
)

var (
	languages    = []string{"COBOL", "PL1", "ASM", "JAVA", "C"}
	statuses     = []string{"ACTIVE", "INACTIVE", "FROZEN"}
	pkgStatuses  = []string{"DEV", "FRZ", "APR", "BAS", "INS"}
	compTypes    = []string{"SRC", "CPY", "LOD", "JCL", "DOC"}
	users        = []string{"USR001", "USR002", "USR015", "OPER01", "BATCH"}
	applications = []string{"ACTP", "DEMO", "FINC", "PAYR"}
	volumes      = []string{"VOL001", "VOL002", "WRK003"}
)

// Generator produces mock record lists per resource type. Field values are
// fixed-format mainframe-style strings; every value is a string because the
// protocol orders records lexicographically regardless of content.
type Generator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	logger *zap.Logger
}

// New creates a generator. A zero seed picks one from the clock; tests pass a
// fixed seed for reproducible records.
func New(seed int64, logger *zap.Logger) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		rnd:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Known reports whether the resource type has a generator.
func Known(resourceType string) bool {
	switch strings.ToLower(resourceType) {
	case ResourceProgram, ResourceComponent, ResourcePackage, ResourceBaseline, ResourceDataset:
		return true
	}
	return false
}

// Generate produces count records of the given resource type.
func (g *Generator) Generate(resourceType string, count int) ([]domain.Record, error) {
	if count < 0 {
		count = 0
	}

	var build func(i int) domain.Record
	switch strings.ToLower(resourceType) {
	case ResourceProgram:
		build = g.program
	case ResourceComponent:
		build = g.component
	case ResourcePackage:
		build = g.zmfPackage
	case ResourceBaseline:
		build = g.baseline
	case ResourceDataset:
		build = g.dataset
	default:
		return nil, domain.ErrUnknownResource
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	records := make([]domain.Record, count)
	for i := 0; i < count; i++ {
		records[i] = build(i)
	}
	g.logger.Debug("records generated",
		zap.String("resource", resourceType),
		zap.Int("count", count))
	return records, nil
}

func (g *Generator) program(i int) domain.Record {
	return domain.Record{
		"name":        fmt.Sprintf("PGM%05d", i+1),
		"language":    g.pick(languages),
		"status":      g.pick(statuses),
		"size":        fmt.Sprintf("%d", 1000+g.rnd.Intn(90000)),
		"compileDate": g.date(),
		"owner":       g.pick(users),
		"library":     fmt.Sprintf("%s.PROD.LOADLIB", g.pick(applications)),
	}
}

func (g *Generator) component(i int) domain.Record {
	return domain.Record{
		"name":          fmt.Sprintf("CMP%05d", i+1),
		"componentType": g.pick(compTypes),
		"package":       fmt.Sprintf("%s%06d", g.pick(applications), g.rnd.Intn(1000)),
		"status":        g.pick(statuses),
		"changedDate":   g.date(),
		"changedBy":     g.pick(users),
	}
}

func (g *Generator) zmfPackage(i int) domain.Record {
	appl := g.pick(applications)
	return domain.Record{
		"packageId":   fmt.Sprintf("%s%06d", appl, i+1),
		"applId":      appl,
		"status":      g.pick(pkgStatuses),
		"installDate": g.date(),
		"creator":     g.pick(users),
		"title":       fmt.Sprintf("Change package %d", i+1),
	}
}

func (g *Generator) baseline(i int) domain.Record {
	return domain.Record{
		"member":      fmt.Sprintf("MBR%05d", i+1),
		"level":       fmt.Sprintf("%d", g.rnd.Intn(10)),
		"dataset":     fmt.Sprintf("%s.BASE.SRCLIB", g.pick(applications)),
		"changedDate": g.date(),
		"changedBy":   g.pick(users),
	}
}

func (g *Generator) dataset(i int) domain.Record {
	return domain.Record{
		"dsn":     fmt.Sprintf("%s.D%04d.DATA", g.pick(applications), i+1),
		"volume":  g.pick(volumes),
		"recfm":   g.pick([]string{"FB", "VB", "U"}),
		"lrecl":   fmt.Sprintf("%d", 80+g.rnd.Intn(200)),
		"created": g.date(),
	}
}

func (g *Generator) pick(values []string) string {
	return values[g.rnd.Intn(len(values))]
}

func (g *Generator) date() string {
	days := g.rnd.Intn(365 * 3)
	return time.Now().AddDate(0, 0, -days).Format("20060102")
}
