package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outreach-data/internal/config"
	httpapi "outreach-data/internal/http"
	"outreach-data/internal/repository"
	"outreach-data/internal/service"
	"outreach-data/internal/store"
	"outreach-data/pkg/database"
	"outreach-data/pkg/logger"
	"outreach-data/pkg/redisutil"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "outreach-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	redisClient := redisutil.NewRedisClient(&cfg.Redis)
	defer redisutil.Close(redisClient)
	kv := store.NewRedisKV(redisClient)

	// repositories
	contactsRepo := repository.NewPostgresContactsRepository(db)
	eventsRepo := repository.NewPostgresEventsRepository(db)
	attendanceRepo := repository.NewPostgresAttendanceRepository(db)
	tasksRepo := repository.NewPostgresTasksRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)

	// 员工目录：默认本库 users 表；配置了 DIRECTORY_URL 时走远端目录服务
	var directory service.StaffDirectory
	if cfg.Directory.BaseURL != "" {
		log.Info("using remote staff directory", zap.String("url", cfg.Directory.BaseURL))
		directory = service.NewHTTPStaffDirectory(cfg.Directory.BaseURL, cfg.Directory.Timeout, log)
	} else {
		directory = service.NewRepoStaffDirectory(usersRepo)
	}
	directory = service.NewCachedStaffDirectory(directory, kv, log)

	// services
	contactSvc := service.NewContactService(contactsRepo, directory, log)
	eventSvc := service.NewEventService(eventsRepo, attendanceRepo, log)
	bulkSvc := service.NewBulkUpdateService(contactsRepo, directory, log)
	campaignSvc := service.NewCampaignService(contactsRepo, tasksRepo, log)
	checkinSvc := service.NewCheckinService(contactsRepo, eventsRepo, attendanceRepo, log)

	// handlers + router
	router := httpapi.NewRouter(log)
	router.RegisterCRMRoutes(
		httpapi.NewContactsHandler(contactSvc, log),
		httpapi.NewBulkUpdateHandler(bulkSvc, log),
		httpapi.NewCampaignsHandler(campaignSvc, log),
		httpapi.NewEventsHandler(eventSvc, log),
		httpapi.NewCheckinHandler(checkinSvc, log),
		httpapi.NewUsersHandler(directory, log),
	)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
		}
	}
}
