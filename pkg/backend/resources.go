package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Payload is a request body sent to the backend.
type Payload map[string]interface{}

// Patients

func (c *Client) ListPatients(ctx context.Context) (interface{}, error) {
	return c.getJSON(ctx, "/patient")
}

func (c *Client) CreatePatient(ctx context.Context, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, "/patient", body)
}

func (c *Client) UpdatePatient(ctx context.Context, id int64, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/patient/%d", id), body)
}

func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/patient/%d", id))
}

// Programs

func (c *Client) ListPrograms(ctx context.Context) (interface{}, error) {
	return c.getJSON(ctx, "/programs")
}

func (c *Client) GetProgram(ctx context.Context, id int64) (interface{}, error) {
	return c.getJSON(ctx, fmt.Sprintf("/programs/%d", id))
}

func (c *Client) CreateProgram(ctx context.Context, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, "/programs", body)
}

func (c *Client) UpdateProgram(ctx context.Context, id int64, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/programs/%d", id), body)
}

func (c *Client) DeleteProgram(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/programs/%d", id))
}

func (c *Client) CreateActivity(ctx context.Context, programID int64, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/programs/%d/activities", programID), body)
}

func (c *Client) UpdateActivity(ctx context.Context, programID, activityID int64, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/programs/%d/activities/%d", programID, activityID), body)
}

func (c *Client) DeleteActivity(ctx context.Context, programID, activityID int64) error {
	return c.delete(ctx, fmt.Sprintf("/programs/%d/activities/%d", programID, activityID))
}

// Instruments

func (c *Client) ListInstruments(ctx context.Context) (interface{}, error) {
	return c.getJSON(ctx, "/instruments")
}

func (c *Client) GetInstrument(ctx context.Context, id int64) (interface{}, error) {
	return c.getJSON(ctx, fmt.Sprintf("/instruments/%d", id))
}

func (c *Client) CreateInstrument(ctx context.Context, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, "/instruments", body)
}

func (c *Client) UpdateInstrument(ctx context.Context, id int64, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/instruments/%d", id), body)
}

func (c *Client) DeleteInstrument(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/instruments/%d", id))
}

// Instrument types

func (c *Client) ListInstrumentTypes(ctx context.Context) (interface{}, error) {
	return c.getJSON(ctx, "/instruments/types")
}

func (c *Client) CreateInstrumentType(ctx context.Context, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, "/instruments/types", body)
}

func (c *Client) UpdateInstrumentType(ctx context.Context, id int64, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/instruments/types/%d", id), body)
}

func (c *Client) DeleteInstrumentType(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/instruments/types/%d", id))
}

// Topics

func (c *Client) GetTopic(ctx context.Context, id string) (interface{}, error) {
	return c.getJSON(ctx, "/topics/"+url.PathEscape(id))
}

// Questions

func (c *Client) ListQuestions(ctx context.Context) (interface{}, error) {
	return c.getJSON(ctx, "/questions")
}

func (c *Client) CreateQuestion(ctx context.Context, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, "/questions", body)
}

func (c *Client) UpdateQuestion(ctx context.Context, id int64, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/questions/%d", id), body)
}

func (c *Client) DeleteQuestion(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/questions/%d", id))
}

// Answers

func (c *Client) ListAnswers(ctx context.Context, questionID string) (interface{}, error) {
	return c.getJSON(ctx, fmt.Sprintf("/questions/%s/answers", url.PathEscape(questionID)))
}

func (c *Client) CreateAnswer(ctx context.Context, questionID string, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/questions/%s/answers", url.PathEscape(questionID)), body)
}

func (c *Client) UpdateAnswer(ctx context.Context, questionID, answerID string, body Payload) (interface{}, error) {
	return c.sendJSON(ctx, http.MethodPatch,
		fmt.Sprintf("/questions/%s/answers/%s", url.PathEscape(questionID), url.PathEscape(answerID)), body)
}

func (c *Client) DeleteAnswer(ctx context.Context, questionID, answerID string) error {
	return c.delete(ctx, fmt.Sprintf("/questions/%s/answers/%s", url.PathEscape(questionID), url.PathEscape(answerID)))
}

// Dashboard

func (c *Client) DashboardSummary(ctx context.Context) (interface{}, error) {
	return c.getJSON(ctx, "/dashboard/summary")
}

// PatientInstruments lists the instruments assigned to a patient user. The
// endpoint requires the caller's bearer token.
func (c *Client) PatientInstruments(ctx context.Context, userID, token string) (interface{}, error) {
	if token != "" {
		ctx = WithToken(ctx, token)
	}
	return c.getJSON(ctx, "/patient-instruments/user/"+url.PathEscape(userID))
}
