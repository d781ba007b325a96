package transport

import (
	"encoding/xml"

	"github.com/valyala/fasthttp"

	"github.com/zmfmock/server/domain"
)

// Status is the semantic response code alias carried in every XML summary.
// These are protocol-level codes, not HTTP statuses.
type Status string

const (
	StatusOK           Status = "OK"
	StatusNoData       Status = "NODATA"
	StatusInvalidParm  Status = "INVALIDPARM"
	StatusNotAvailable Status = "NOTAVAILABLE"
	StatusInvalidData  Status = "INVALIDDATA"
)

// ReturnCode maps a status alias to the mainframe-style numeric return code.
func (s Status) ReturnCode() string {
	switch s {
	case StatusOK:
		return "00"
	case StatusNoData:
		return "04"
	case StatusInvalidParm:
		return "08"
	case StatusNotAvailable:
		return "12"
	default:
		return "16"
	}
}

// Summary is the metadata block present in every XML response.
type Summary struct {
	ReturnCode           string `xml:"returnCode"`
	Status               Status `xml:"status"`
	Message              string `xml:"message,omitempty"`
	RecordCount          int    `xml:"recordCount"`
	DisplayedRecordCount int    `xml:"displayedRecordCount"`
	CacheToken           string `xml:"cacheToken,omitempty"`
}

// Response is the full XML body: summary plus an optional record list.
type Response struct {
	XMLName xml.Name        `xml:"response"`
	Summary Summary         `xml:"summary"`
	Records []domain.Record `xml:"records>record,omitempty"`
}

// NewResult builds a record-bearing response. Passing summaryOnly drops the
// record list but keeps the counts.
func NewResult(records []domain.Record, total int, cacheToken string, summaryOnly bool) *Response {
	status := StatusOK
	if total == 0 {
		status = StatusNoData
	}
	resp := &Response{
		Summary: Summary{
			ReturnCode:           status.ReturnCode(),
			Status:               status,
			RecordCount:          total,
			DisplayedRecordCount: len(records),
			CacheToken:           cacheToken,
		},
	}
	if !summaryOnly {
		resp.Records = records
	} else {
		resp.Summary.DisplayedRecordCount = 0
	}
	return resp
}

// NewFault builds an error response with no records.
func NewFault(status Status, message string) *Response {
	return &Response{
		Summary: Summary{
			ReturnCode: status.ReturnCode(),
			Status:     status,
			Message:    message,
		},
	}
}

// WriteXML serializes the response onto the fasthttp context.
func WriteXML(ctx *fasthttp.RequestCtx, httpStatus int, resp *Response) {
	ctx.Response.Header.SetContentType("application/xml")
	ctx.SetStatusCode(httpStatus)
	body, err := xml.Marshal(resp)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBodyString(xml.Header)
	ctx.Response.AppendBody(body)
}
