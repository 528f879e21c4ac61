// Package workers contains the asynchronous consumers of the job queues.
package workers

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/rowcast-simple/lib/messaging"
	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/queue"
	"github.com/rs/zerolog"
)

var placeholderPattern = regexp.MustCompile(`\{\w*\}`)

// MessageWorker is the single consumer of the message queue. For each
// dispatch job it rebuilds one flat row per data row, interpolates the
// project template and forwards the result to the notification provider.
// A row without a phone value is skipped with a warning; any other row
// failure aborts the whole job.
type MessageWorker struct {
	provider messaging.Provider
	enabled  bool
	logger   zerolog.Logger
}

// NewMessageWorker creates a worker delivering through the given provider.
// When enabled is false, sends are logged instead of performed.
func NewMessageWorker(provider messaging.Provider, enabled bool) *MessageWorker {
	return &MessageWorker{
		provider: provider,
		enabled:  enabled,
		logger:   zerolog.New(os.Stdout).With().Timestamp().Str("worker", queue.MessagesQueue).Logger(),
	}
}

// Process consumes one dispatch job. Errors never propagate past this
// handler: they are logged together with provider diagnostics when the
// provider rejected a payload.
func (w *MessageWorker) Process(job queue.Job) {
	project, ok := job.Payload.(models.Project)
	if !ok {
		w.logger.Error().
			Str("job", job.Name).
			Msg("Job payload is not a project snapshot")
		return
	}

	if err := w.sendMessages(project); err != nil {
		w.logger.Error().
			Str("job", job.Name).
			Str("projectId", project.ID).
			Err(err).
			Msg("Job aborted")
		if provErr, isProvider := messaging.AsProviderError(err); isProvider {
			w.logger.Error().
				Str("provider", provErr.Provider).
				Str("code", provErr.Code).
				Str("providerMessage", provErr.Message).
				Msg("Provider rejected dispatch")
		}
	}
}

func (w *MessageWorker) sendMessages(project models.Project) error {
	template := ""
	if project.MessageTemplate != nil {
		template = *project.MessageTemplate
	}

	// Re-check every readiness condition, reporting all violations
	var errs []string
	if project.Device == nil {
		errs = append(errs, "Device is not defined")
	}
	if template == "" {
		errs = append(errs, "Template is not defined")
	}
	if len(project.Fields) == 0 {
		errs = append(errs, "Fields is empty")
	}
	if len(project.DataRows) == 0 {
		errs = append(errs, "No data was found")
	}
	if len(project.Fields) > 0 && !hasField(project.Fields, "phone") {
		errs = append(errs, "Missing required field 'phone'")
	}

	if len(errs) > 0 {
		w.logger.Error().
			Str("projectId", project.ID).
			Strs("errors", errs).
			Msg("Messages cannot be sent")
		return nil
	}

	w.logger.Info().Str("projectId", project.ID).Msg("Start sending...")

	for _, dataRow := range project.DataRows {
		row, err := BuildRow(project.Fields, dataRow.Fields)
		if err != nil {
			return err
		}

		message := BuildMessage(row, template)

		if row["phone"] == "" {
			w.logger.Warn().
				Str("dataRowId", dataRow.ID).
				Interface("row", row).
				Msg("Message cannot be sent because of missing phone number")
			continue
		}

		payload := BuildPayload(row, *project.Device, message)

		if !w.enabled {
			w.logger.Warn().
				Str("phone", row["phone"]).
				Msg("Attempt to send message but message sending is disabled")
			continue
		}

		reference, err := w.provider.Send(payload)
		if err != nil {
			return err
		}

		w.logger.Info().
			Str("phone", row["phone"]).
			Str("message", message).
			Str("reference", reference).
			Msg("Successfully sent message")
	}

	w.logger.Info().Str("projectId", project.ID).Msg("Sending completed")
	return nil
}

// BuildRow flattens the field values of one data row into a name keyed
// map.
//
//	fields:        [{id: 1, name: "firstname"}, {id: 2, name: "lastname"}]
//	dataRowFields: [{fieldId: 1, value: "Eric"}, {fieldId: 2, value: "Moth"}]
//	=>             {firstname: "Eric", lastname: "Moth"}
//
// A value referencing a field id absent from fields is a hard invariant
// violation and fails the build.
func BuildRow(fields []models.Field, dataRowFields []models.DataRowField) (map[string]string, error) {
	row := map[string]string{}
	if len(fields) == 0 || len(dataRowFields) == 0 {
		return row, nil
	}

	for _, drf := range dataRowFields {
		field := findField(fields, drf.FieldID)
		if field == nil {
			return nil, fmt.Errorf("field with id %s cannot be found for data row %s", drf.FieldID, drf.DataRowID)
		}
		row[field.Name] = drf.Value
	}
	return row, nil
}

// BuildMessage substitutes every {key} occurrence in the template with the
// row's value for key. Keys without a row value stay as literal {key}
// text. An empty template yields the empty string; a template without
// placeholders or an empty row is returned unchanged.
func BuildMessage(row map[string]string, template string) string {
	if template == "" {
		return ""
	}
	if len(row) == 0 || !placeholderPattern.MatchString(template) {
		return template
	}

	message := template
	for key, value := range row {
		message = strings.ReplaceAll(message, "{"+key+"}", value)
	}
	return message
}

// BuildPayload binds the interpolated message and the row's phone value to
// the recipient device
func BuildPayload(row map[string]string, device models.Device, message string) messaging.Payload {
	return messaging.Payload{
		RecipientToken: device.Token,
		AccessToken:    device.AccessToken,
		Phone:          row["phone"],
		Body:           message,
	}
}

func findField(fields []models.Field, id string) *models.Field {
	for i := range fields {
		if fields[i].ID == id {
			return &fields[i]
		}
	}
	return nil
}

func hasField(fields []models.Field, name string) bool {
	for _, field := range fields {
		if field.Name == name {
			return true
		}
	}
	return false
}
