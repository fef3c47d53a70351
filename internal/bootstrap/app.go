package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/worklane/hrms/internal/config"
	"github.com/worklane/hrms/internal/database"
	"github.com/worklane/hrms/internal/handler"
	"github.com/worklane/hrms/internal/logger"
	"github.com/worklane/hrms/internal/repository"
	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/storage"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB
}

type handlers struct {
	users        *handler.UserHandler
	departments  *handler.DepartmentHandler
	designations *handler.DesignationHandler
	employees    *handler.EmployeeHandler
	attendance   *handler.AttendanceHandler
	leaveTypes   *handler.LeaveTypeHandler
	leaves       *handler.LeaveHandler
	currencies   *handler.CurrencyHandler
	salaries     *handler.SalaryHandler
	documents    *handler.DocumentHandler
	auditLogs    *handler.AuditLogHandler
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	dbConfig := database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	// Optional employee search index; a nil index disables the feature.
	var search *database.EmployeeIndex
	if cfg.ELASTIC_URL != "" {
		search, err = database.NewEmployeeIndex(cfg.ELASTIC_URL)
		if err != nil {
			return fmt.Errorf("failed to initialize employee search index: %w", err)
		}
		logger.InfoLog(ctx, "Employee search index enabled")
	}

	store, err := storage.NewDiskStore(cfg.DOCUMENT_STORAGE_DIR)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	h, err := buildHandlers(db, search, store)
	if err != nil {
		return err
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes(h)

	return nil
}

func buildHandlers(db *sql.DB, search *database.EmployeeIndex, store storage.Store) (*handlers, error) {
	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	designationRepo := repository.NewDesignationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveTypeRepo := repository.NewLeaveTypeRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	salaryRepo := repository.NewSalaryRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Lookups for the single-entry audit view; GetAnyByID keeps soft-deleted
	// rows resolvable from the trail.
	auditRecords := map[string]service.RecordLookup{
		"departments": func(ctx context.Context, id int64) (interface{}, error) {
			return departmentRepo.GetAnyByID(ctx, id)
		},
		"designations": func(ctx context.Context, id int64) (interface{}, error) {
			return designationRepo.GetAnyByID(ctx, id)
		},
		"employees": func(ctx context.Context, id int64) (interface{}, error) {
			return employeeRepo.GetAnyByID(ctx, id)
		},
		"leave_types": func(ctx context.Context, id int64) (interface{}, error) {
			return leaveTypeRepo.GetAnyByID(ctx, id)
		},
		"leaves": func(ctx context.Context, id int64) (interface{}, error) {
			return leaveRepo.GetAnyByID(ctx, id)
		},
		"salaries": func(ctx context.Context, id int64) (interface{}, error) {
			return salaryRepo.GetAnyByID(ctx, id)
		},
		"employee_documents": func(ctx context.Context, id int64) (interface{}, error) {
			return documentRepo.GetAnyByID(ctx, id)
		},
	}

	cfg := config.DefaultEnvConfig
	exportSvc := service.NewExportService(employeeRepo, attendanceRepo)
	if err := exportSvc.LoadLayouts(cfg.EXPORT_EMPLOYEE_LAYOUT, cfg.EXPORT_ATTENDANCE_LAYOUT); err != nil {
		return nil, fmt.Errorf("failed to load export layouts: %w", err)
	}

	return &handlers{
		users:        handler.NewUserHandler(service.NewUserService(userRepo)),
		departments:  handler.NewDepartmentHandler(service.NewDepartmentService(departmentRepo, auditRepo)),
		designations: handler.NewDesignationHandler(service.NewDesignationService(designationRepo, departmentRepo, auditRepo)),
		employees: handler.NewEmployeeHandler(
			service.NewEmployeeService(employeeRepo, departmentRepo, designationRepo, userRepo, auditRepo, search),
			exportSvc,
		),
		attendance: handler.NewAttendanceHandler(
			service.NewAttendanceService(attendanceRepo, employeeRepo),
			exportSvc,
		),
		leaveTypes: handler.NewLeaveTypeHandler(service.NewLeaveTypeService(leaveTypeRepo, auditRepo)),
		leaves:     handler.NewLeaveHandler(service.NewLeaveService(leaveRepo, employeeRepo, leaveTypeRepo, auditRepo)),
		currencies: handler.NewCurrencyHandler(service.NewCurrencyService(currencyRepo, auditRepo)),
		salaries:   handler.NewSalaryHandler(service.NewSalaryService(salaryRepo, employeeRepo, currencyRepo, auditRepo)),
		documents:  handler.NewDocumentHandler(service.NewDocumentService(documentRepo, employeeRepo, store, auditRepo)),
		auditLogs:  handler.NewAuditLogHandler(service.NewAuditLogService(auditRepo, auditRecords)),
	}, nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(h *handlers) {
	api := a.Echo.Group("/api")

	users := api.Group("/users")
	users.GET("", h.users.List)
	users.GET("/options", h.users.Options)
	users.GET("/:id", h.users.Get)
	users.POST("", h.users.Create)
	users.PUT("/:id", h.users.Update)
	users.DELETE("/:id", h.users.Delete)

	departments := api.Group("/departments")
	departments.GET("", h.departments.List)
	departments.GET("/options", h.departments.Options)
	departments.GET("/:id", h.departments.Get)
	departments.POST("", h.departments.Create)
	departments.PUT("/:id", h.departments.Update)
	departments.DELETE("/:id", h.departments.Delete)

	designations := api.Group("/designations")
	designations.GET("", h.designations.List)
	designations.GET("/options", h.designations.Options)
	designations.GET("/:id", h.designations.Get)
	designations.POST("", h.designations.Create)
	designations.PUT("/:id", h.designations.Update)
	designations.DELETE("/:id", h.designations.Delete)

	employees := api.Group("/employees")
	employees.GET("", h.employees.List)
	employees.GET("/form-data", h.employees.FormData)
	employees.GET("/search", h.employees.Search)
	employees.GET("/export", h.employees.Export)
	employees.GET("/:id", h.employees.Get)
	employees.POST("", h.employees.Create)
	employees.PUT("/:id", h.employees.Update)
	employees.DELETE("/:id", h.employees.Delete)

	attendance := api.Group("/attendance-records")
	attendance.GET("", h.attendance.List)
	attendance.GET("/export", h.attendance.Export)
	attendance.GET("/:id", h.attendance.Get)
	attendance.POST("", h.attendance.Create)
	attendance.PUT("/:id", h.attendance.Update)
	attendance.DELETE("/:id", h.attendance.Delete)

	leaveTypes := api.Group("/leave-types")
	leaveTypes.GET("", h.leaveTypes.List)
	leaveTypes.GET("/options", h.leaveTypes.Options)
	leaveTypes.GET("/:id", h.leaveTypes.Get)
	leaveTypes.POST("", h.leaveTypes.Create)
	leaveTypes.PUT("/:id", h.leaveTypes.Update)
	leaveTypes.DELETE("/:id", h.leaveTypes.Delete)

	leaves := api.Group("/leaves")
	leaves.GET("", h.leaves.List)
	leaves.GET("/:id", h.leaves.Get)
	leaves.POST("", h.leaves.Create)
	leaves.PUT("/:id", h.leaves.Update)
	leaves.PATCH("/:id/status", h.leaves.Decide)
	leaves.DELETE("/:id", h.leaves.Delete)

	currencies := api.Group("/currencies")
	currencies.GET("", h.currencies.List)
	currencies.GET("/options", h.currencies.Options)
	currencies.GET("/:id", h.currencies.Get)
	currencies.POST("", h.currencies.Create)
	currencies.PUT("/:id", h.currencies.Update)
	currencies.DELETE("/:id", h.currencies.Delete)

	salaries := api.Group("/salaries")
	salaries.GET("", h.salaries.List)
	salaries.GET("/:id", h.salaries.Get)
	salaries.POST("", h.salaries.Create)
	salaries.PUT("/:id", h.salaries.Update)
	salaries.DELETE("/:id", h.salaries.Delete)

	documents := api.Group("/employee-documents")
	documents.GET("", h.documents.List)
	documents.GET("/:id", h.documents.Get)
	documents.GET("/:id/file", h.documents.Download)
	documents.POST("", h.documents.Create)
	documents.PUT("/:id", h.documents.Update)
	documents.DELETE("/:id", h.documents.Delete)

	auditLogs := api.Group("/audit-logs")
	auditLogs.GET("", h.auditLogs.List)
	auditLogs.GET("/:id", h.auditLogs.Get)
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
