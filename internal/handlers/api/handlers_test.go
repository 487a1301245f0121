package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"feedbackanalysis/internal/auth"
	"feedbackanalysis/internal/db"
	"feedbackanalysis/internal/models"
)

type fakeFeedback struct {
	rows  []models.StoredFeedback
	chart []models.ChartRow
	pie   []models.PieRow
	err   error
}

func (f *fakeFeedback) AllFeedback(ctx context.Context) ([]models.StoredFeedback, error) {
	return f.rows, f.err
}

func (f *fakeFeedback) ChartData(ctx context.Context) ([]models.ChartRow, error) {
	return f.chart, f.err
}

func (f *fakeFeedback) PieChartData(ctx context.Context) ([]models.PieRow, error) {
	return f.pie, f.err
}

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[name]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	return u, nil
}

type fakeProcessor struct {
	err error
}

func (f *fakeProcessor) ProcessOne(ctx context.Context, text string) (models.FeedbackRecord, error) {
	if f.err != nil {
		return models.FeedbackRecord{}, f.err
	}
	return models.FeedbackRecord{Text: text, SentimentClass: 3, Clusters: []string{"Service", "Luggage"}}, nil
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

func newFeedbackApp(store FeedbackReader) *fiber.App {
	app := fiber.New()
	h := NewFeedbackHandler(store)
	app.Get("/get_all_data", h.AllData)
	app.Get("/get_chart_data", h.ChartData)
	app.Get("/get_pie_chart_data", h.PieChartData)
	return app
}

func TestFeedbackHandler_ChartData(t *testing.T) {
	app := newFeedbackApp(&fakeFeedback{chart: []models.ChartRow{
		{Area: "Service", PositiveCount: 2, NegativeCount: 1},
	}})

	status, body := doRequest(t, app, "GET", "/get_chart_data", "")
	if status != 200 {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(rows) != 1 || rows[0]["area"] != "Service" || rows[0]["positive_count"] != float64(2) || rows[0]["negative_count"] != float64(1) {
		t.Errorf("rows = %v", rows)
	}
}

func TestFeedbackHandler_PieChartData(t *testing.T) {
	app := newFeedbackApp(&fakeFeedback{pie: []models.PieRow{{Area: "Food", PositiveCount: 4}}})

	status, body := doRequest(t, app, "GET", "/get_pie_chart_data", "")
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != `[{"area":"Food","positive_count":4}]` {
		t.Errorf("body = %s", body)
	}
}

func TestFeedbackHandler_AllData(t *testing.T) {
	app := newFeedbackApp(&fakeFeedback{rows: []models.StoredFeedback{
		{Area: "Seat", Points: 1, Label: models.LabelNegative},
	}})

	status, body := doRequest(t, app, "GET", "/get_all_data", "")
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(rows) != 1 || rows[0]["area"] != "Seat" || rows[0]["points"] != float64(1) || rows[0]["type"] != "negative" {
		t.Errorf("rows = %v", rows)
	}
}

func TestFeedbackHandler_EmptyIsArray(t *testing.T) {
	app := newFeedbackApp(&fakeFeedback{})

	for _, path := range []string{"/get_all_data", "/get_chart_data", "/get_pie_chart_data"} {
		status, body := doRequest(t, app, "GET", path, "")
		if status != 200 || body != "[]" {
			t.Errorf("GET %s = %d %s, want 200 []", path, status, body)
		}
	}
}

func TestFeedbackHandler_StoreError(t *testing.T) {
	app := newFeedbackApp(&fakeFeedback{err: errors.New("connection refused")})

	for _, path := range []string{"/get_all_data", "/get_chart_data", "/get_pie_chart_data"} {
		status, body := doRequest(t, app, "GET", path, "")
		if status != 500 {
			t.Errorf("GET %s status = %d, want 500", path, status)
		}
		if body != `{"error":"connection refused"}` {
			t.Errorf("GET %s body = %s", path, body)
		}
	}
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	app := fiber.New()
	app.Post("/login", NewAuthHandler(&fakeUsers{users: map[string]*models.User{
		"alice": {Name: "alice", PasswordHash: hash},
	}}).Login)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"correct credentials", `{"name":"alice","password":"secret"}`, 200, `{"message":"Login successful"}`},
		{"wrong password", `{"name":"alice","password":"wrong"}`, 401, ""},
		{"unknown user", `{"name":"bob","password":"secret"}`, 401, ""},
		{"missing name", `{"password":"secret"}`, 400, ""},
		{"missing password", `{"name":"alice"}`, 400, ""},
		{"invalid json", `{name`, 400, ""},
		{"plaintext stored value does not match itself", `{"name":"alice","password":"` + hash + `"}`, 401, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, "POST", "/login", tt.body)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", status, tt.wantStatus, body)
			}
			if tt.wantBody != "" && body != tt.wantBody {
				t.Errorf("body = %s, want %s", body, tt.wantBody)
			}
		})
	}
}

func TestUnknownUserHash(t *testing.T) {
	hash := unknownUserHash()
	if hash == "" {
		t.Fatal("unknownUserHash() returned an empty hash")
	}
	if !auth.VerifyPassword(hash, dummyPassword) {
		t.Error("unknownUserHash() is not a valid argon2id hash of the dummy password")
	}
	if unknownUserHash() != hash {
		t.Error("unknownUserHash() changed between calls")
	}
}

func TestAuthHandler_LoginStoreError(t *testing.T) {
	app := fiber.New()
	app.Post("/login", NewAuthHandler(&fakeUsers{err: errors.New("db exploded")}).Login)

	status, body := doRequest(t, app, "POST", "/login", `{"name":"alice","password":"secret"}`)
	if status != 500 {
		t.Errorf("status = %d, want 500", status)
	}
	if strings.Contains(body, "db exploded") {
		t.Errorf("login leaked error detail: %s", body)
	}
}

func TestClassifyHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/classify", NewClassifyHandler(&fakeProcessor{}).Classify)

	status, body := doRequest(t, app, "POST", "/classify", `{"text":"great service, fast luggage"}`)
	if status != 200 {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}

	var resp classifyResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Area != "Service, Luggage" || resp.Type != models.LabelPositive || resp.SentimentClass != 3 {
		t.Errorf("response = %+v", resp)
	}

	status, _ = doRequest(t, app, "POST", "/classify", `{"text":"   "}`)
	if status != 400 {
		t.Errorf("blank text status = %d, want 400", status)
	}
}

func TestClassifyHandler_Failure(t *testing.T) {
	app := fiber.New()
	app.Post("/classify", NewClassifyHandler(&fakeProcessor{err: errors.New("model down")}).Classify)

	status, _ := doRequest(t, app, "POST", "/classify", `{"text":"hello"}`)
	if status != 503 {
		t.Errorf("status = %d, want 503", status)
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", NewHealthHandler(fakePinger{}).Check)
	app.Get("/down", NewHealthHandler(fakePinger{err: errors.New("no route")}).Check)

	if status, _ := doRequest(t, app, "GET", "/ok", ""); status != 200 {
		t.Errorf("healthy status = %d, want 200", status)
	}
	if status, _ := doRequest(t, app, "GET", "/down", ""); status != 503 {
		t.Errorf("unhealthy status = %d, want 503", status)
	}
}
