package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/config"
	appHTTP "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/jwt"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/repository/postgresql"
	serviceAuth "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/auth"
	importerService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/importer"
	payrollService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/payroll"
	progressService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/progress"
	signatureService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/signature"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	signatureRepo := postgresql.NewSignatureRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	mappingRepo := postgresql.NewMappingRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := serviceAuth.NewAuthService(employeeRepo, signatureRepo, JWTService)
	signatureSvc := signatureService.NewService(employeeRepo, payrollRepo, signatureRepo, loc, nil)
	progressSvc := progressService.NewService(payrollRepo, signatureRepo)
	payrollSvc := payrollService.NewService(employeeRepo, payrollRepo, nil)
	importerSvc := importerService.NewService(employeeRepo, payrollRepo, attendanceRepo, mappingRepo, cfg.Import, nil)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	signatureHandler := appHTTP.NewSignatureHandler(signatureSvc)
	progressHandler := appHTTP.NewProgressHandler(progressSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	importHandler := appHTTP.NewImportHandler(importerSvc, cfg.Import.MaxUploadBytes)
	mappingHandler := appHTTP.NewMappingHandler(mappingRepo)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		signatureHandler,
		progressHandler,
		payrollHandler,
		importHandler,
		mappingHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
