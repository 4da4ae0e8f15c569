package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dreitier/shortcal/calendar"
	"github.com/dreitier/shortcal/timesync"
)

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type DateTimeResponse struct {
	Packed      uint64 `json:"packed"`
	Formatted   string `json:"formatted"`
	Iso         string `json:"iso"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	Hour        int    `json:"hour"`
	Minute      int    `json:"minute"`
	Second      int    `json:"second"`
	Millisecond int    `json:"millisecond"`
	Valid       bool   `json:"valid"`
}

type NowResponse struct {
	DateTimeResponse
	Initialized bool  `json:"initialized"`
	Offset      int64 `json:"offset"`
}

type SyncResponse struct {
	Offset      int64             `json:"offset"`
	Initialized bool              `json:"initialized"`
	LastSync    *DateTimeResponse `json:"last_sync,omitempty"`
	LastError   string            `json:"last_error,omitempty"`
	Missed      bool              `json:"missed"`
}

// month is reported 1-based
func newDateTimeResponse(dt calendar.DateTime) DateTimeResponse {
	return DateTimeResponse{
		Packed:      dt.Uint64(),
		Formatted:   dt.String(),
		Iso:         dt.ToTime().Format(isoLayout),
		Year:        dt.Year(),
		Month:       dt.MonthOfYear(),
		Day:         dt.Day(),
		Hour:        dt.Hour(),
		Minute:      dt.Minute(),
		Second:      dt.Second(),
		Millisecond: dt.Millisecond(),
		Valid:       dt.Validate() == nil,
	}
}

type api struct {
	clock  *calendar.Clock
	syncer *timesync.Syncer
}

func (a *api) GetNow(w http.ResponseWriter) {
	writeData(w, NowResponse{
		DateTimeResponse: newDateTimeResponse(a.clock.Now()),
		Initialized:      a.clock.IsInitialized(),
		Offset:           a.clock.Offset(),
	})
}

func (a *api) Parse(w http.ResponseWriter, text string) {
	if text == "" {
		badRequest(w, "Query parameter 'text' is required.")
		return
	}

	dt, ok, err := calendar.Parse(text)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if !ok {
		notFound(w, "No date found in '"+text+"'.")
		return
	}

	writeData(w, newDateTimeResponse(dt))
}

func (a *api) Decode(w http.ResponseWriter, packed string) {
	dt, ok := decodePacked(w, packed)
	if !ok {
		return
	}

	writeData(w, newDateTimeResponse(dt))
}

func (a *api) Add(
	w http.ResponseWriter,
	packed string,
	unitName string,
	amount string,
) {
	dt, ok := decodePacked(w, packed)
	if !ok {
		return
	}

	unit, err := calendar.ParseUnit(unitName)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		badRequest(w, "Amount '"+amount+"' is not an integer.")
		return
	}

	if err := dt.AddChecked(unit, n); err != nil {
		badRequest(w, err.Error())
		return
	}
	writeData(w, newDateTimeResponse(dt))
}

func (a *api) GetSyncStatus(w http.ResponseWriter) {
	if a.syncer == nil {
		notFound(w, "Time sync is not configured.")
		return
	}

	writeData(w, newSyncResponse(a.syncer.Status()))
}

func (a *api) TriggerSync(w http.ResponseWriter) {
	if a.syncer == nil {
		notFound(w, "Time sync is not configured.")
		return
	}

	a.syncer.Trigger()
	writeDataWithStatus(w, http.StatusAccepted, newSyncResponse(a.syncer.Status()))
}

func newSyncResponse(status timesync.Status) SyncResponse {
	response := SyncResponse{
		Offset:      status.Offset,
		Initialized: status.Initialized,
		Missed:      status.Missed,
	}
	if status.LastSync != 0 {
		lastSync := newDateTimeResponse(status.LastSync)
		response.LastSync = &lastSync
	}
	if status.LastError != nil {
		response.LastError = status.LastError.Error()
	}
	return response
}

func decodePacked(w http.ResponseWriter, packed string) (calendar.DateTime, bool) {
	v, err := strconv.ParseUint(packed, 10, 64)
	if err != nil {
		badRequest(w, "'"+packed+"' is not a packed date-time.")
		return 0, false
	}
	return calendar.FromUint64(v), true
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeDataWithStatus(w, http.StatusOK, data)
}

func writeDataWithStatus(w http.ResponseWriter, status int, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		errStr := err.Error()
		_, _ = w.Write([]byte(errStr))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
