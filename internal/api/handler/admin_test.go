package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/saturnino-fabrica-de-software/ponto/internal/admin"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// MockAdminService is a mock implementation of AdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(ctx context.Context, username, password string) (*admin.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.LoginResult), args.Error(1)
}

func (m *MockAdminService) CreateUser(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}

func (m *MockAdminService) Stats(ctx context.Context) (*admin.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.DashboardStats), args.Error(1)
}

func (m *MockAdminService) DailyReport(ctx context.Context, day time.Time, department string) ([]domain.AttendanceEntry, error) {
	args := m.Called(ctx, day, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceEntry), args.Error(1)
}

func (m *MockAdminService) ExportCSV(ctx context.Context, from, to time.Time, department string, w io.Writer) error {
	args := m.Called(ctx, from, to, department, w)
	if args.Error(0) == nil {
		_, _ = w.Write([]byte("record_id,employee_id,name,department,timestamp,confidence\n"))
	}
	return args.Error(0)
}

func TestAdminHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAdminService)
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "successful login",
			body: `{"username":"admin","password":"correct horse"}`,
			setupMock: func(m *MockAdminService) {
				m.On("Login", mock.Anything, "admin", "correct horse").Return(&admin.LoginResult{
					Token:     "token123",
					ExpiresAt: time.Now().Add(24 * time.Hour),
					User:      domain.AdminUser{ID: uuid.New(), Username: "admin"},
				}, nil)
			},
			expectedStatus: 200,
			checkResponse: func(t *testing.T, body []byte) {
				var resp LoginResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "token123", resp.Token)
				assert.Equal(t, "admin", resp.Username)
			},
		},
		{
			name: "wrong password",
			body: `{"username":"admin","password":"nope"}`,
			setupMock: func(m *MockAdminService) {
				m.On("Login", mock.Anything, "admin", "nope").Return(nil, domain.ErrInvalidCredentials)
			},
			expectedStatus: 401,
		},
		{
			name:           "empty credentials",
			body:           `{"username":"","password":""}`,
			setupMock:      func(m *MockAdminService) {},
			expectedStatus: 422,
		},
		{
			name:           "malformed body",
			body:           `{not json`,
			setupMock:      func(m *MockAdminService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAdminService{}
			tt.setupMock(mockService)

			handler := NewAdminHandler(mockService, testLogger())
			app := createTestApp()
			app.Post("/v1/admin/login", handler.Login)

			req := httptest.NewRequest("POST", "/v1/admin/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				respBody, _ := io.ReadAll(resp.Body)
				tt.checkResponse(t, respBody)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_CreateUser(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAdminService)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"username":"ops","password":"long enough"}`,
			setupMock: func(m *MockAdminService) {
				m.On("CreateUser", mock.Anything, "ops", "long enough").Return(&domain.AdminUser{
					ID:       userID,
					Username: "ops",
				}, nil)
			},
			expectedStatus: 201,
		},
		{
			name: "duplicate username",
			body: `{"username":"ops","password":"long enough"}`,
			setupMock: func(m *MockAdminService) {
				m.On("CreateUser", mock.Anything, "ops", "long enough").Return(nil, domain.ErrAdminUserExists)
			},
			expectedStatus: 409,
		},
		{
			name: "short password",
			body: `{"username":"ops","password":"short"}`,
			setupMock: func(m *MockAdminService) {
				m.On("CreateUser", mock.Anything, "ops", "short").Return(nil, domain.ErrValidationFailed)
			},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAdminService{}
			tt.setupMock(mockService)

			handler := NewAdminHandler(mockService, testLogger())
			app := createTestApp()
			app.Post("/v1/admin/users", handler.CreateUser)

			req := httptest.NewRequest("POST", "/v1/admin/users", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			mockService.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	mockService := &MockAdminService{}
	mockService.On("Stats", mock.Anything).Return(&admin.DashboardStats{
		TotalEmployees: 12,
		CheckinsToday:  8,
		PresentToday:   7,
	}, nil)

	handler := NewAdminHandler(mockService, testLogger())
	app := createTestApp()
	app.Get("/v1/admin/stats", handler.Stats)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/admin/stats", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stats admin.DashboardStats
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &stats))
	assert.Equal(t, 12, stats.TotalEmployees)
}

func TestAdminHandler_Export(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockAdminService)
		expectedStatus int
		wantFilename   string
	}{
		{
			// The requested end day is part of the export: the range handed
			// to the service runs through its midnight boundary.
			name:  "explicit range includes the end day",
			query: "?from=2026-08-01&to=2026-08-27",
			setupMock: func(m *MockAdminService) {
				m.On("ExportCSV", mock.Anything,
					time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
					"", mock.Anything).Return(nil)
			},
			expectedStatus: 200,
			wantFilename:   "attendance_2026-08-01_2026-08-27.csv",
		},
		{
			name:  "department filter",
			query: "?from=2026-08-01&to=2026-08-27&department=Engineering",
			setupMock: func(m *MockAdminService) {
				m.On("ExportCSV", mock.Anything,
					time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
					"Engineering", mock.Anything).Return(nil)
			},
			expectedStatus: 200,
		},
		{
			name:  "default range",
			query: "",
			setupMock: func(m *MockAdminService) {
				m.On("ExportCSV", mock.Anything, mock.Anything, mock.Anything, "", mock.Anything).Return(nil)
			},
			expectedStatus: 200,
		},
		{
			name:           "garbage date",
			query:          "?from=yesterday",
			setupMock:      func(m *MockAdminService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAdminService{}
			tt.setupMock(mockService)

			handler := NewAdminHandler(mockService, testLogger())
			app := createTestApp()
			app.Get("/v1/admin/export", handler.Export)

			resp, err := app.Test(httptest.NewRequest("GET", "/v1/admin/export"+tt.query, nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == 200 {
				assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
				assert.True(t, strings.Contains(resp.Header.Get("Content-Disposition"), "attachment"))
			}
			if tt.wantFilename != "" {
				assert.Contains(t, resp.Header.Get("Content-Disposition"), tt.wantFilename)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_Daily(t *testing.T) {
	entry := domain.AttendanceEntry{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Name:       "Priya Sharma",
		Department: "Engineering",
		Timestamp:  time.Date(2026, 8, 27, 9, 15, 0, 0, time.UTC),
		Confidence: 0.93,
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockAdminService)
		expectedStatus int
		expectedTotal  int
	}{
		{
			name:  "explicit date",
			query: "?date=2026-08-27",
			setupMock: func(m *MockAdminService) {
				m.On("DailyReport", mock.Anything,
					time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), "").
					Return([]domain.AttendanceEntry{entry}, nil)
			},
			expectedStatus: 200,
			expectedTotal:  1,
		},
		{
			name:  "department filter",
			query: "?date=2026-08-27&department=Sales",
			setupMock: func(m *MockAdminService) {
				m.On("DailyReport", mock.Anything,
					time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), "Sales").
					Return([]domain.AttendanceEntry{}, nil)
			},
			expectedStatus: 200,
			expectedTotal:  0,
		},
		{
			name:  "defaults to today",
			query: "",
			setupMock: func(m *MockAdminService) {
				m.On("DailyReport", mock.Anything, time.Time{}, "").
					Return([]domain.AttendanceEntry{entry}, nil)
			},
			expectedStatus: 200,
			expectedTotal:  1,
		},
		{
			name:           "garbage date",
			query:          "?date=today",
			setupMock:      func(m *MockAdminService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAdminService{}
			tt.setupMock(mockService)

			handler := NewAdminHandler(mockService, testLogger())
			app := createTestApp()
			app.Get("/v1/admin/attendance/daily", handler.Daily)

			resp, err := app.Test(httptest.NewRequest("GET", "/v1/admin/attendance/daily"+tt.query, nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == 200 {
				var report DailyReportResponse
				respBody, _ := io.ReadAll(resp.Body)
				assert.NoError(t, json.Unmarshal(respBody, &report))
				assert.Equal(t, tt.expectedTotal, report.Total)
				assert.Len(t, report.Entries, tt.expectedTotal)
			}

			mockService.AssertExpectations(t)
		})
	}
}
