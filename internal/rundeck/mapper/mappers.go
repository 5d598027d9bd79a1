// Package mapper converts raw JSON payloads from the Rundeck API into the
// domain entity types. Mapping is a pure transformation: a payload either
// maps completely or the call fails with a MappingError; no partial entities
// are ever produced. Unknown fields in the source are ignored.
package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/domain"
	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
)

// apiTime decodes Rundeck's two timestamp shapes: an RFC3339 string, or an
// object like {"unixtime": 1700000000000, "date": "..."} with unixtime in
// milliseconds. When both are present unixtime wins.
type apiTime struct {
	t   time.Time
	set bool
}

func (a *apiTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		a.t, a.set = parsed, true
		return nil
	}

	var obj struct {
		UnixTime *int64 `json:"unixtime"`
		Date     string `json:"date"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid timestamp shape: %w", err)
	}
	if obj.UnixTime != nil {
		a.t, a.set = time.UnixMilli(*obj.UnixTime).UTC(), true
		return nil
	}
	if obj.Date != "" {
		parsed, err := time.Parse(time.RFC3339, obj.Date)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", obj.Date, err)
		}
		a.t, a.set = parsed, true
		return nil
	}
	return nil
}

// flexInt decodes an integer that the API sometimes serializes as a string
// (the output endpoint's offset field does this).
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number or numeric string")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("expected numeric value, got %q", s)
	}
	*f = flexInt(n)
	return nil
}

type optionJSON struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Required    bool     `json:"required"`
	Value       *string  `json:"value"`
	Values      []string `json:"values"`
	Enforced    bool     `json:"enforced"`
	Secure      bool     `json:"secure"`
	Multivalued bool     `json:"multivalued"`
	Delimiter   *string  `json:"delimiter"`
}

type jobJSON struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Group           *string      `json:"group"`
	Project         string       `json:"project"`
	Description     *string      `json:"description"`
	Scheduled       bool         `json:"scheduled"`
	ScheduleEnabled *bool        `json:"scheduleEnabled"`
	Enabled         *bool        `json:"enabled"`
	AverageDuration *int64       `json:"averageDuration"`
	Options         []optionJSON `json:"options"`
}

type jobRefJSON struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Group   *string `json:"group"`
	Project string  `json:"project"`
}

type executionJSON struct {
	ID         *int64      `json:"id"`
	Status     string      `json:"status"`
	Project    string      `json:"project"`
	Job        *jobRefJSON `json:"job"`
	User       string      `json:"user"`
	DateStart  apiTime     `json:"date-started"`
	DateEnd    apiTime     `json:"date-ended"`
	ArgString  *string     `json:"argstring"`
	DurationMS *int64      `json:"duration"`
}

type logEntryJSON struct {
	Time         string  `json:"time"`
	AbsoluteTime *string `json:"absolute_time"`
	Level        string  `json:"level"`
	Log          string  `json:"log"`
	Node         *string `json:"node"`
	StepCtx      *string `json:"stepctx"`
	User         *string `json:"user"`
}

type outputJSON struct {
	Offset        flexInt        `json:"offset"`
	Completed     bool           `json:"completed"`
	HasMoreOutput bool           `json:"hasMoreOutput"`
	ExecState     *string        `json:"execState"`
	ExecDuration  int64          `json:"execDuration"`
	PercentLoaded float64        `json:"percentLoaded"`
	Entries       []logEntryJSON `json:"entries"`
}

type executionListJSON struct {
	Paging *struct {
		Total int `json:"total"`
	} `json:"paging"`
	Executions []json.RawMessage `json:"executions"`
}

// Job maps a single job payload. The job detail endpoint sometimes answers
// with a one-element array; that wrapper is unwrapped here.
func Job(raw json.RawMessage) (domain.Job, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return domain.Job{}, errors.NewMappingError("job", "", fmt.Errorf("empty job response"))
		}
		raw = list[0]
	}

	var j jobJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return domain.Job{}, errors.NewMappingError("job", "", err)
	}
	return mapJob(j)
}

// Jobs maps a job list payload (a bare JSON array).
func Jobs(raw json.RawMessage) ([]domain.Job, error) {
	var list []jobJSON
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.NewMappingError("job list", "", err)
	}
	jobs := make([]domain.Job, 0, len(list))
	for _, j := range list {
		job, err := mapJob(j)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func mapJob(j jobJSON) (domain.Job, error) {
	if j.ID == "" {
		return domain.Job{}, errors.NewMappingError("job", "id", errMissing)
	}
	if j.Name == "" {
		return domain.Job{}, errors.NewMappingError("job", "name", errMissing)
	}
	if j.Project == "" {
		return domain.Job{}, errors.NewMappingError("job", "project", errMissing)
	}

	job := domain.Job{
		ID:              j.ID,
		Name:            j.Name,
		Group:           emptyToNil(j.Group),
		Project:         j.Project,
		Description:     emptyToNil(j.Description),
		Scheduled:       j.Scheduled,
		ScheduleEnabled: boolOr(j.ScheduleEnabled, true),
		Enabled:         boolOr(j.Enabled, true),
		AverageDuration: j.AverageDuration,
	}
	for _, o := range j.Options {
		opt, err := mapOption(o)
		if err != nil {
			return domain.Job{}, err
		}
		job.Options = append(job.Options, opt)
	}
	return job, nil
}

func mapOption(o optionJSON) (domain.JobOption, error) {
	if o.Name == "" {
		return domain.JobOption{}, errors.NewMappingError("job option", "name", errMissing)
	}

	var allowed domain.AllowedValues
	if len(o.Values) > 0 {
		if o.Enforced {
			allowed = domain.EnforcedValues(o.Values...)
		} else {
			allowed = domain.SuggestedValues(o.Values...)
		}
	}

	return domain.JobOption{
		Name:        o.Name,
		Description: emptyToNil(o.Description),
		Required:    o.Required,
		Default:     emptyToNil(o.Value),
		Allowed:     allowed,
		Secure:      o.Secure,
		Multivalued: o.Multivalued,
		Delimiter:   o.Delimiter,
	}, nil
}

// Execution maps a single execution payload. The same mapping handles the
// response of POST /job/<id>/run, which is a freshly started execution.
func Execution(raw json.RawMessage) (domain.Execution, error) {
	var e executionJSON
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.Execution{}, errors.NewMappingError("execution", "", err)
	}
	return mapExecution(e)
}

// Executions maps a list payload. Both the enveloped shape
// {"paging": {...}, "executions": [...]} and a bare array are accepted. The
// returned total is the server-reported paging total when present, else the
// number of mapped items.
func Executions(raw json.RawMessage) ([]domain.Execution, int, error) {
	var envelope executionListJSON
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Executions == nil {
		var bare []json.RawMessage
		if err := json.Unmarshal(raw, &bare); err != nil {
			return nil, 0, errors.NewMappingError("execution list", "", fmt.Errorf("unexpected response shape"))
		}
		envelope.Executions = bare
		envelope.Paging = nil
	}

	execs := make([]domain.Execution, 0, len(envelope.Executions))
	for _, rawExec := range envelope.Executions {
		exec, err := Execution(rawExec)
		if err != nil {
			return nil, 0, err
		}
		execs = append(execs, exec)
	}

	total := len(execs)
	if envelope.Paging != nil {
		total = envelope.Paging.Total
	}
	return execs, total, nil
}

func mapExecution(e executionJSON) (domain.Execution, error) {
	if e.ID == nil {
		return domain.Execution{}, errors.NewMappingError("execution", "id", errMissing)
	}
	if e.Status == "" {
		return domain.Execution{}, errors.NewMappingError("execution", "status", errMissing)
	}
	status := domain.ExecutionStatus(e.Status)
	if !status.IsValid() {
		return domain.Execution{}, errors.NewMappingError("execution", "status",
			fmt.Errorf("unknown status %q", e.Status))
	}
	if e.Project == "" {
		return domain.Execution{}, errors.NewMappingError("execution", "project", errMissing)
	}
	if e.User == "" {
		return domain.Execution{}, errors.NewMappingError("execution", "user", errMissing)
	}
	if !e.DateStart.set {
		return domain.Execution{}, errors.NewMappingError("execution", "date-started", errMissing)
	}

	exec := domain.Execution{
		ID:        *e.ID,
		Status:    status,
		Project:   e.Project,
		User:      e.User,
		StartedAt: e.DateStart.t,
		ArgString: emptyToNil(e.ArgString),
	}
	if e.Job != nil {
		exec.Job = &domain.JobReference{
			ID:      e.Job.ID,
			Name:    e.Job.Name,
			Group:   emptyToNil(e.Job.Group),
			Project: orDefault(e.Job.Project, e.Project),
		}
	}
	if e.DateEnd.set {
		end := e.DateEnd.t
		exec.EndedAt = &end
	}
	switch {
	case e.DurationMS != nil:
		exec.DurationMS = e.DurationMS
	case exec.EndedAt != nil:
		d := exec.EndedAt.Sub(exec.StartedAt).Milliseconds()
		exec.DurationMS = &d
	}
	return exec, nil
}

// ExecutionOutput maps an output payload. Rundeck reports percentLoaded on a
// 0-100 scale; the domain carries a 0..1 fraction, so it is normalized here.
func ExecutionOutput(executionID int64, raw json.RawMessage) (domain.ExecutionOutput, error) {
	var o outputJSON
	if err := json.Unmarshal(raw, &o); err != nil {
		return domain.ExecutionOutput{}, errors.NewMappingError("execution output", "", err)
	}

	fraction := o.PercentLoaded / 100
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	out := domain.ExecutionOutput{
		ExecutionID:   executionID,
		Completed:     o.Completed,
		ExecState:     o.ExecState,
		ExecDuration:  o.ExecDuration,
		PercentLoaded: fraction,
		Offset:        int64(o.Offset),
		HasMoreOutput: o.HasMoreOutput,
		Entries:       make([]domain.LogEntry, 0, len(o.Entries)),
	}
	for _, entry := range o.Entries {
		out.Entries = append(out.Entries, domain.LogEntry{
			Time:         entry.Time,
			AbsoluteTime: emptyToNil(entry.AbsoluteTime),
			Level:        orDefault(entry.Level, "NORMAL"),
			Message:      entry.Log,
			Node:         emptyToNil(entry.Node),
			Step:         emptyToNil(entry.StepCtx),
			User:         emptyToNil(entry.User),
		})
	}
	return out, nil
}

var errMissing = fmt.Errorf("required field is missing")

// emptyToNil keeps "no value" explicit: an absent or empty source string maps
// to nil, never to an in-band empty string.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
