package main

import (
	"fmt"
	"net/http"

	"github.com/bayanihr/payroll-backend-go/internal/config"
	appHTTP "github.com/bayanihr/payroll-backend-go/internal/handler/http"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/jwt"
	"github.com/bayanihr/payroll-backend-go/internal/repository/postgresql"
	advanceService "github.com/bayanihr/payroll-backend-go/internal/service/advance"
	contributionService "github.com/bayanihr/payroll-backend-go/internal/service/contribution"
	disciplineService "github.com/bayanihr/payroll-backend-go/internal/service/discipline"
	payrollService "github.com/bayanihr/payroll-backend-go/internal/service/payroll"
	periodService "github.com/bayanihr/payroll-backend-go/internal/service/period"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	periodRepo := postgresql.NewPayPeriodRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	noticeRepo := postgresql.NewNoticeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceSource := postgresql.NewAttendanceSource(db)
	leaveSource := postgresql.NewLeaveSource(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	advanceSvc := advanceService.NewAdvanceService(db, advanceRepo, employeeRepo)
	periodSvc := periodService.NewPayPeriodService(db, periodRepo, payrollRepo)
	scheduleSvc := contributionService.NewScheduleService(db, scheduleRepo)
	disciplineSvc := disciplineService.NewDisciplineService(db, noticeRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		attendanceSource,
		leaveSource,
		employeeRepo,
		periodRepo,
		scheduleRepo,
		advanceSvc,
	)

	periodHandler := appHTTP.NewPayPeriodHandler(periodSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	disciplineHandler := appHTTP.NewDisciplineHandler(disciplineSvc)
	contributionHandler := appHTTP.NewContributionHandler(scheduleSvc)

	router := appHTTP.NewRouter(
		JWTService,
		periodHandler,
		payrollHandler,
		advanceHandler,
		disciplineHandler,
		contributionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
