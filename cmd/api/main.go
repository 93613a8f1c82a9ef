package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/hadirin/hadirin-backend-go/internal/config"
	appHTTP "github.com/hadirin/hadirin-backend-go/internal/handler/http"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/jwt"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/sse"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/storage"
	"github.com/hadirin/hadirin-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirin/hadirin-backend-go/internal/service/attendance"
	authService "github.com/hadirin/hadirin-backend-go/internal/service/auth"
	employeeService "github.com/hadirin/hadirin-backend-go/internal/service/employee"
	"github.com/hadirin/hadirin-backend-go/internal/service/file"
	reportService "github.com/hadirin/hadirin-backend-go/internal/service/report"
	shiftService "github.com/hadirin/hadirin-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.Database, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	calculator, err := attendanceService.NewCalculator(cfg.Payroll)
	if err != nil {
		log.Fatal("Failed to initialize salary calculator: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage, cfg.Storage.BaseURL)
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, shiftRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, shiftRepo, fileSvc, calculator, hub)
	reportSvc := reportService.NewReportService(reportRepo, calculator.Location())

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Events:     appHTTP.NewEventsHandler(hub, jwtService),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
