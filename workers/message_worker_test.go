package workers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rowcast-simple/lib/messaging"
	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/queue"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	payloads []messaging.Payload
	err      error
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) Send(payload messaging.Payload) (string, error) {
	p.payloads = append(p.payloads, payload)
	if p.err != nil {
		return "", p.err
	}
	return "ref-1", nil
}

func newTestWorker(provider messaging.Provider, enabled bool) (*MessageWorker, *bytes.Buffer) {
	var buf bytes.Buffer
	worker := &MessageWorker{
		provider: provider,
		enabled:  enabled,
		logger:   zerolog.New(&buf),
	}
	return worker, &buf
}

func strPtr(s string) *string {
	return &s
}

func testDevice() *models.Device {
	return &models.Device{Token: "device-token", AccessToken: "access-token"}
}

func TestBuildRow(t *testing.T) {
	fields := []models.Field{
		{ID: "1", Name: "firstname"},
		{ID: "2", Name: "lastname"},
	}
	dataRowFields := []models.DataRowField{
		{FieldID: "1", Value: "Eric"},
		{FieldID: "2", Value: "Moth"},
	}

	row, err := BuildRow(fields, dataRowFields)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"firstname": "Eric", "lastname": "Moth"}, row)
}

func TestBuildRow_Empty(t *testing.T) {
	row, err := BuildRow(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, row)

	row, err = BuildRow([]models.Field{{ID: "1", Name: "firstname"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestBuildRow_UnknownField(t *testing.T) {
	fields := []models.Field{{ID: "1", Name: "firstname"}}
	dataRowFields := []models.DataRowField{
		{DataRowID: "row-9", FieldID: "2", Value: "Moth"},
	}

	_, err := BuildRow(fields, dataRowFields)
	require.Error(t, err)
	assert.EqualError(t, err, "field with id 2 cannot be found for data row row-9")
}

func TestBuildMessage(t *testing.T) {
	row := map[string]string{"firstname": "Eric", "lastname": "Moth"}

	assert.Equal(t, "", BuildMessage(row, ""))
	assert.Equal(t, "Hello world", BuildMessage(row, "Hello world"))
	assert.Equal(t, "Hello {name}", BuildMessage(nil, "Hello {name}"))
	// Placeholders without a row value stay literal
	assert.Equal(t, "Hello {name}", BuildMessage(row, "Hello {name}"))
	assert.Equal(t, "Hello Eric Moth", BuildMessage(row, "Hello {firstname} {lastname}"))
}

func TestBuildPayload(t *testing.T) {
	row := map[string]string{"phone": "0612345678"}
	device := models.Device{Token: "device-token", AccessToken: "access-token"}

	payload := BuildPayload(row, device, "Hello Eric")
	assert.Equal(t, messaging.Payload{
		RecipientToken: "device-token",
		AccessToken:    "access-token",
		Phone:          "0612345678",
		Body:           "Hello Eric",
	}, payload)
}

func TestProcess_SkipsRowsWithoutPhone(t *testing.T) {
	provider := &fakeProvider{}
	worker, buf := newTestWorker(provider, true)

	phone := models.Field{ID: "f-phone", Name: "phone"}
	firstname := models.Field{ID: "f-first", Name: "firstname"}
	project := models.Project{
		ID:              "p-1",
		MessageTemplate: strPtr("Hello {firstname}"),
		Device:          testDevice(),
		Fields:          []models.Field{phone, firstname},
		DataRows: []models.DataRow{
			{ID: "row-1", Fields: []models.DataRowField{
				{FieldID: "f-first", Value: "Eric"},
			}},
			{ID: "row-2", Fields: []models.DataRowField{
				{FieldID: "f-phone", Value: "0612345678"},
				{FieldID: "f-first", Value: "Jane"},
			}},
			{ID: "row-3", Fields: []models.DataRowField{
				{FieldID: "f-first", Value: "Moth"},
			}},
		},
	}

	worker.Process(queue.Job{Name: queue.JobSendMessages, Payload: project})

	require.Len(t, provider.payloads, 1)
	assert.Equal(t, "0612345678", provider.payloads[0].Phone)
	assert.Equal(t, "Hello Jane", provider.payloads[0].Body)
	assert.Equal(t, "device-token", provider.payloads[0].RecipientToken)

	logs := buf.String()
	assert.Equal(t, 2, strings.Count(logs, "Message cannot be sent because of missing phone number"))
	assert.Contains(t, logs, "row-1")
	assert.Contains(t, logs, "row-3")
	assert.Contains(t, logs, "Sending completed")
}

func TestProcess_ReportsAllReadinessViolations(t *testing.T) {
	provider := &fakeProvider{}
	worker, buf := newTestWorker(provider, true)

	worker.Process(queue.Job{Name: queue.JobSendMessages, Payload: models.Project{ID: "p-1"}})

	assert.Empty(t, provider.payloads)
	logs := buf.String()
	assert.Contains(t, logs, "Messages cannot be sent")
	assert.Contains(t, logs, "Device is not defined")
	assert.Contains(t, logs, "Template is not defined")
	assert.Contains(t, logs, "Fields is empty")
	assert.Contains(t, logs, "No data was found")
}

func TestProcess_DisabledLogsInsteadOfSending(t *testing.T) {
	provider := &fakeProvider{}
	worker, buf := newTestWorker(provider, false)

	phone := models.Field{ID: "f-phone", Name: "phone"}
	project := models.Project{
		ID:              "p-1",
		MessageTemplate: strPtr("Hello"),
		Device:          testDevice(),
		Fields:          []models.Field{phone},
		DataRows: []models.DataRow{
			{ID: "row-1", Fields: []models.DataRowField{
				{FieldID: "f-phone", Value: "0612345678"},
			}},
		},
	}

	worker.Process(queue.Job{Name: queue.JobSendMessages, Payload: project})

	assert.Empty(t, provider.payloads)
	assert.Contains(t, buf.String(), "message sending is disabled")
}

func TestProcess_ProviderErrorAbortsJob(t *testing.T) {
	provider := &fakeProvider{err: &messaging.ProviderError{
		Provider: "fake",
		Code:     "invalid_token",
		Message:  "access token rejected",
	}}
	worker, buf := newTestWorker(provider, true)

	phone := models.Field{ID: "f-phone", Name: "phone"}
	project := models.Project{
		ID:              "p-1",
		MessageTemplate: strPtr("Hello"),
		Device:          testDevice(),
		Fields:          []models.Field{phone},
		DataRows: []models.DataRow{
			{ID: "row-1", Fields: []models.DataRowField{
				{FieldID: "f-phone", Value: "0612345678"},
			}},
			{ID: "row-2", Fields: []models.DataRowField{
				{FieldID: "f-phone", Value: "0698765432"},
			}},
		},
	}

	worker.Process(queue.Job{Name: queue.JobSendMessages, Payload: project})

	// The first rejection aborts the whole job
	require.Len(t, provider.payloads, 1)
	logs := buf.String()
	assert.Contains(t, logs, "Job aborted")
	assert.Contains(t, logs, "Provider rejected dispatch")
	assert.Contains(t, logs, "invalid_token")
	assert.NotContains(t, logs, "Sending completed")
}

func TestProcess_RejectsForeignPayload(t *testing.T) {
	provider := &fakeProvider{}
	worker, buf := newTestWorker(provider, true)

	worker.Process(queue.Job{Name: queue.JobSendMessages, Payload: "not a project"})

	assert.Empty(t, provider.payloads)
	assert.Contains(t, buf.String(), "Job payload is not a project snapshot")
}
