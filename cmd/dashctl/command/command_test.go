package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jwalitptl/practice-dashboard/pkg/backend"
)

func testCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestPrintDays(t *testing.T) {
	var out bytes.Buffer
	err := printDays(testCmd(&out), []string{"Miércoles", "sab", "Sunday"})
	require.NoError(t, err)
	assert.Equal(t, "Miércoles\tWed\nsab\tSat\nSunday\tSun\n", out.String())

	out.Reset()
	err = printDays(testCmd(&out), []string{"someday"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "someday\t?")
}

func TestPrintDaysForDates(t *testing.T) {
	asDate = true
	defer func() { asDate = false }()

	var out bytes.Buffer
	require.NoError(t, printDays(testCmd(&out), []string{"2024-06-03"}))
	assert.Equal(t, "2024-06-03\tMon\n", out.String())
}

func TestSyncAnswersRejectsLocalIDs(t *testing.T) {
	var out bytes.Buffer
	d := &deps{client: backend.NewClient(backend.Config{}), log: zap.NewNop().Sugar(), out: &out}

	err := syncAnswers(testCmd(&out), d, "mock-question-1", []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a backend id")
}

func TestSyncAnswersDryRunListsAnswers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /questions/12/answers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "etiqueta": "Sí"},
			{"id": 2, "etiqueta": "No"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dryRun = true
	defer func() { dryRun = false }()

	var out bytes.Buffer
	d := &deps{
		client: backend.NewClient(backend.Config{BaseURL: srv.URL, Timeout: time.Second}),
		log:    zap.NewNop().Sugar(),
		out:    &out,
	}
	require.NoError(t, syncAnswers(testCmd(&out), d, "12", nil))
	assert.Contains(t, out.String(), "question 12 has 2 answers")
	assert.Contains(t, out.String(), "1 Sí")
}
