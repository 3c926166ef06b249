package main

import (
	"context"
	"log"

	"softdesk/internal/config"
	"softdesk/internal/handler"
	"softdesk/internal/model"
	"softdesk/internal/pkg"
	"softdesk/internal/repository/mysql"
	"softdesk/internal/repository/redis"
	"softdesk/internal/router"
	"softdesk/internal/service"
)

func main() {
	cfg := config.Load()

	pkg.InitSecrets(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	// 连接redis
	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		panic(err)
	}
	defer redisClient.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Contributor{},
		&model.Issue{},
		&model.Comment{},
		&model.ActivityOutbox{},
	)

	userRepo := &mysql.UserRepository{DB: mysql.DB}
	projectRepo := &mysql.ProjectRepository{DB: mysql.DB}
	memberRepo := &mysql.ContributorRepository{DB: mysql.DB}
	issueRepo := &mysql.IssueRepository{DB: mysql.DB}
	commentRepo := &mysql.CommentRepository{DB: mysql.DB}
	outboxRepo := &mysql.OutboxRepository{DB: mysql.DB}
	sessions := redis.NewSessionRepository(redisClient)

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	}
	notifier := service.NewEmailNotifier(smtp)

	userSvc := service.NewUserService(userRepo, sessions)
	projectSvc := service.NewProjectService(projectRepo, memberRepo, userRepo)
	issueSvc := service.NewIssueService(issueRepo, projectRepo, memberRepo, userRepo, notifier)
	commentSvc := service.NewCommentService(commentRepo, issueRepo, memberRepo)

	// 活动事件投递：配了 broker 走 kafka，否则打日志
	sender := service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		publisher := pkg.NewActivityPublisher(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer publisher.Close()
		sender = service.KafkaSender(publisher)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relayer := service.NewOutboxRelayer(outboxRepo, sender)
	go relayer.Run(ctx)

	r := router.InitRouter(
		handler.NewUserHandler(userSvc),
		handler.NewProjectHandler(projectSvc),
		handler.NewIssueHandler(issueSvc),
		handler.NewCommentHandler(commentSvc),
		sessions,
	)

	log.Printf("listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal(err)
	}
}
