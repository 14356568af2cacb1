package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// RecognizeResponse represents the response for a recognition attempt
type RecognizeResponse struct {
	Employee          RecognizedEmployeeData `json:"employee"`
	Confidence        float64                `json:"confidence" example:"0.91"`
	AttendanceLogged  bool                   `json:"attendance_logged" example:"true"`
	Message           string                 `json:"message" example:"Welcome, Priya Sharma! Attendance logged at 9:15 AM"`
	RecordID          string                 `json:"record_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp         string                 `json:"timestamp" example:"2026-01-05T09:15:00Z"`
	RetryAfterMinutes int                    `json:"retry_after_minutes,omitempty" example:"7"`
}

// RecognizedEmployeeData represents the matched employee in a recognition response
type RecognizedEmployeeData struct {
	ID         string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string `json:"name" example:"Priya Sharma"`
	Department string `json:"department" example:"Engineering"`
	Position   string `json:"position" example:"Engineer"`
}

// DetectResponse represents the response for face detection
type DetectResponse struct {
	Count int            `json:"count" example:"1"`
	Faces []FaceBoxData  `json:"faces"`
}

// FaceBoxData represents a detected face bounding box
type FaceBoxData struct {
	BoundingBox BoundingBoxData `json:"bounding_box"`
	Confidence  float64         `json:"confidence" example:"0.99"`
}

// BoundingBoxData represents pixel coordinates of a face
type BoundingBoxData struct {
	Left   int `json:"left" example:"120"`
	Top    int `json:"top" example:"80"`
	Width  int `json:"width" example:"200"`
	Height int `json:"height" example:"240"`
}

// EmployeeData represents an employee in API responses
type EmployeeData struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FirstName    string `json:"first_name" example:"Priya"`
	LastName     string `json:"last_name" example:"Sharma"`
	Department   string `json:"department" example:"Engineering"`
	Position     string `json:"position" example:"Engineer"`
	Email        string `json:"email" example:"priya@example.com"`
	CompanyEmail string `json:"company_email" example:"priya.sharma@company.com"`
	CreatedAt    string `json:"created_at" example:"2026-01-05T09:00:00Z"`
}

// ListEmployeesData represents the employee list response
type ListEmployeesData struct {
	Employees []EmployeeData `json:"employees"`
	Total     int            `json:"total" example:"12"`
}

// ActivityEntryData represents a recent check-in entry
type ActivityEntryData struct {
	ID         string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EmployeeID string  `json:"employee_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string  `json:"name" example:"Priya Sharma"`
	Department string  `json:"department" example:"Engineering"`
	Timestamp  string  `json:"timestamp" example:"2026-01-05T09:15:00Z"`
	Confidence float64 `json:"confidence" example:"0.91"`
}

// ActivityData represents the recent activity response
type ActivityData struct {
	Entries []ActivityEntryData `json:"entries"`
	Total   int                 `json:"total" example:"5"`
}

// LoginRequestData represents the admin login request body
type LoginRequestData struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret"`
}

// LoginResponseData represents a successful login response
type LoginResponseData struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresAt string `json:"expires_at" example:"2026-01-06T09:00:00Z"`
	Username  string `json:"username" example:"admin"`
}

// StatsData represents the dashboard stats response
type StatsData struct {
	TotalEmployees int                 `json:"total_employees" example:"12"`
	CheckinsToday  int                 `json:"checkins_today" example:"8"`
	PresentToday   int                 `json:"present_today" example:"7"`
	RecentActivity []ActivityEntryData `json:"recent_activity"`
}

// DailyReportData represents the daily attendance report response
type DailyReportData struct {
	Entries []ActivityEntryData `json:"entries"`
	Total   int                 `json:"total" example:"2"`
}

// CreateUserData represents the admin user creation response
type CreateUserData struct {
	ID       string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username string `json:"username" example:"ops"`
}

// HealthData represents the health check response
type HealthData struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger builds the OpenAPI document for the attendance API
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Ponto Attendance API",
		Version:     "v1.0.0",
		Description: "Face-recognition attendance tracking for a single office: kiosk check-in, employee enrollment and an admin dashboard",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// Attendance endpoints

		// POST /v1/attendance/recognize - Check in via face recognition
		endpoint.New(
			endpoint.POST,
			"/attendance/recognize",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Recognize a face and log attendance"),
			endpoint.WithDescription("Matches the submitted photo against enrolled employees and logs a check-in unless one was already recorded inside the cooldown window."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognizeResponse{}, "200", "Recognition outcome"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "FACE_NOT_RECOGNIZED", Message: "Face not recognized"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "MULTIPLE_FACES", Message: "Multiple faces detected"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/attendance/recent - Recent activity feed
		endpoint.New(
			endpoint.GET,
			"/attendance/recent",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("List recent check-ins"),
			endpoint.WithDescription("Returns the latest attendance entries with employee names, newest first."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum number of entries (default: 20, max: 100)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ActivityData{}, "200", "Recent activity"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/faces/detect - Face detection preview
		endpoint.New(
			endpoint.POST,
			"/faces/detect",
			endpoint.WithTags("Faces"),
			endpoint.WithSummary("Detect faces in an image"),
			endpoint.WithDescription("Returns face bounding boxes without matching or logging attendance. Used by the kiosk camera preview."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(DetectResponse{}, "200", "Detected faces"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Employee endpoints

		// POST /v1/employees - Register employee
		endpoint.New(
			endpoint.POST,
			"/employees",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Register a new employee"),
			endpoint.WithDescription("Registers an employee with a face photo. The photo must contain exactly one face not already enrolled."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmployeeData{}, "201", "Employee registered"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "EMPLOYEE_EXISTS", Message: "Employee already exists"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "FACE_EXISTS", Message: "Face already enrolled"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/employees - List employees
		endpoint.New(
			endpoint.GET,
			"/employees",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("List registered employees"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListEmployeesData{}, "200", "Employee list"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/employees/{id} - Get employee
		endpoint.New(
			endpoint.GET,
			"/employees/{id}",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Get an employee"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Employee UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmployeeData{}, "200", "Employee"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
			}),
		),

		// DELETE /v1/employees/{id} - Delete employee
		endpoint.New(
			endpoint.DELETE,
			"/employees/{id}",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Delete an employee"),
			endpoint.WithDescription("Removes the employee, their face embedding and their attendance records."),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Employee UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(struct{}{}, "204", "Employee deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found"}, "404", "Not Found"),
			}),
		),

		// Admin endpoints

		// POST /v1/admin/login - Admin login
		endpoint.New(
			endpoint.POST,
			"/admin/login",
			endpoint.WithTags("Admin"),
			endpoint.WithSummary("Authenticate an admin user"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(LoginRequestData{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(LoginResponseData{}, "200", "JWT issued"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "Incorrect username or password"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
			}),
		),

		// GET /v1/admin/stats - Dashboard stats
		endpoint.New(
			endpoint.GET,
			"/admin/stats",
			endpoint.WithTags("Admin"),
			endpoint.WithSummary("Dashboard summary"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StatsData{}, "200", "Today's stats"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/attendance/daily - Daily attendance report
		endpoint.New(
			endpoint.GET,
			"/admin/attendance/daily",
			endpoint.WithTags("Admin"),
			endpoint.WithSummary("Daily attendance report"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("date", parameter.Query, parameter.WithDescription("Report date (YYYY-MM-DD, default: today)")),
				parameter.StrParam("department", parameter.Query, parameter.WithDescription("Filter by department")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(DailyReportData{}, "200", "Check-ins for the day"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/export - CSV export
		endpoint.New(
			endpoint.GET,
			"/admin/export",
			endpoint.WithTags("Admin"),
			endpoint.WithSummary("Export attendance records as CSV"),
			endpoint.WithProduce([]mime.MIME{mime.MIME("text/csv")}),
			endpoint.WithParams(
				parameter.StrParam("from", parameter.Query, parameter.WithDescription("Start date (YYYY-MM-DD, default: 30 days ago)")),
				parameter.StrParam("to", parameter.Query, parameter.WithDescription("End date (YYYY-MM-DD inclusive, default: today)")),
				parameter.StrParam("department", parameter.Query, parameter.WithDescription("Filter by department")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(struct{}{}, "200", "CSV file"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/admin/users - Create admin user
		endpoint.New(
			endpoint.POST,
			"/admin/users",
			endpoint.WithTags("Admin"),
			endpoint.WithSummary("Create an admin user"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(LoginRequestData{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CreateUserData{}, "201", "User created"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "ADMIN_USER_EXISTS", Message: "Admin user already exists"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /health - Liveness probe
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthData{}, "200", "Service alive"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
