package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
)

// MockEnrollmentService is a mock implementation of EnrollmentService
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) Register(ctx context.Context, req service.RegisterEmployeeRequest, image []byte) (*domain.Employee, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEnrollmentService) List(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEnrollmentService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEnrollmentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestEmployeeHandler_Register(t *testing.T) {
	employeeID := uuid.New()

	formFields := map[string]string{
		"first_name": "Priya",
		"last_name":  "Sharma",
		"department": "Engineering",
		"position":   "Engineer",
		"email":      "priya@example.com",
	}

	tests := []struct {
		name           string
		fields         map[string]string
		imageContent   []byte
		contentType    string
		setupMock      func(*MockEnrollmentService)
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:         "successful registration",
			fields:       formFields,
			imageContent: make([]byte, 5000),
			contentType:  "image/jpeg",
			setupMock: func(m *MockEnrollmentService) {
				m.On("Register", mock.Anything, service.RegisterEmployeeRequest{
					FirstName:  "Priya",
					LastName:   "Sharma",
					Department: "Engineering",
					Position:   "Engineer",
					Email:      "priya@example.com",
				}, mock.Anything).Return(&domain.Employee{
					ID:           employeeID,
					FirstName:    "Priya",
					LastName:     "Sharma",
					Department:   "Engineering",
					Position:     "Engineer",
					Email:        "priya@example.com",
					CompanyEmail: "priya.sharma@company.com",
					CreatedAt:    time.Now(),
				}, nil)
			},
			expectedStatus: 201,
			checkResponse: func(t *testing.T, body []byte) {
				var resp EmployeeResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, employeeID.String(), resp.ID)
				assert.Equal(t, "priya.sharma@company.com", resp.CompanyEmail)
			},
		},
		{
			name:         "duplicate face",
			fields:       formFields,
			imageContent: make([]byte, 5000),
			contentType:  "image/jpeg",
			setupMock: func(m *MockEnrollmentService) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrFaceExists)
			},
			expectedStatus: 409,
		},
		{
			name:           "missing image",
			fields:         formFields,
			imageContent:   nil,
			setupMock:      func(m *MockEnrollmentService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockEnrollmentService{}
			tt.setupMock(mockService)

			handler := NewEmployeeHandler(mockService, testLogger())
			app := createTestApp()
			app.Post("/v1/employees", handler.Register)

			body, contentType, _ := createMultipartRequest(tt.fields, tt.imageContent, tt.contentType)

			req := httptest.NewRequest("POST", "/v1/employees", body)
			req.Header.Set("Content-Type", contentType)

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

func TestEmployeeHandler_List(t *testing.T) {
	mockService := &MockEnrollmentService{}
	mockService.On("List", mock.Anything).Return([]domain.Employee{
		{ID: uuid.New(), FirstName: "Priya", LastName: "Sharma"},
		{ID: uuid.New(), FirstName: "Marcus", LastName: "Webb"},
	}, nil)

	handler := NewEmployeeHandler(mockService, testLogger())
	app := createTestApp()
	app.Get("/v1/employees", handler.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/employees", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result ListEmployeesResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &result))
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Employees, 2)
}

func TestEmployeeHandler_Get(t *testing.T) {
	employeeID := uuid.New()

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockEnrollmentService)
		expectedStatus int
	}{
		{
			name: "found",
			id:   employeeID.String(),
			setupMock: func(m *MockEnrollmentService) {
				m.On("Get", mock.Anything, employeeID).Return(&domain.Employee{
					ID:        employeeID,
					FirstName: "Priya",
					LastName:  "Sharma",
				}, nil)
			},
			expectedStatus: 200,
		},
		{
			name: "not found",
			id:   employeeID.String(),
			setupMock: func(m *MockEnrollmentService) {
				m.On("Get", mock.Anything, employeeID).Return(nil, domain.ErrEmployeeNotFound)
			},
			expectedStatus: 404,
		},
		{
			name:           "malformed id",
			id:             "not-a-uuid",
			setupMock:      func(m *MockEnrollmentService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockEnrollmentService{}
			tt.setupMock(mockService)

			handler := NewEmployeeHandler(mockService, testLogger())
			app := createTestApp()
			app.Get("/v1/employees/:id", handler.Get)

			resp, err := app.Test(httptest.NewRequest("GET", "/v1/employees/"+tt.id, nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			mockService.AssertExpectations(t)
		})
	}
}

func TestEmployeeHandler_Delete(t *testing.T) {
	employeeID := uuid.New()

	mockService := &MockEnrollmentService{}
	mockService.On("Delete", mock.Anything, employeeID).Return(nil)

	handler := NewEmployeeHandler(mockService, testLogger())
	app := createTestApp()
	app.Delete("/v1/employees/:id", handler.Delete)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/v1/employees/"+employeeID.String(), nil))
	assert.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	mockService.AssertExpectations(t)
}
