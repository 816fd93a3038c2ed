package tasks

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

var (
	client          *asynq.Client
	server          *asynq.Server
	serveMux        *asynq.ServeMux
	taskManager     *asynq.PeriodicTaskManager
	onceTasks       sync.Once
	onceServer      sync.Once
	onceServeMux    sync.Once
	onceTaskManager sync.Once
)

func redisConnOpt() asynq.RedisClientOpt {
	port, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		port = 6379
	}

	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", os.Getenv("REDIS_HOST"), port),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	}
}

func AsynqClient() *asynq.Client {
	onceTasks.Do(func() {
		client = asynq.NewClient(redisConnOpt())
	})

	return client
}

func AsynqServer() *asynq.Server {
	onceServer.Do(func() {
		server = asynq.NewServer(
			redisConnOpt(),
			asynq.Config{
				Concurrency: 10,
				Queues: map[string]int{
					"critical": 6,
					"default":  3,
					"low":      1,
				},
			},
		)
	})

	return server
}

func AsynqServeMux() *asynq.ServeMux {
	onceServeMux.Do(func() {
		serveMux = asynq.NewServeMux()
		serveMux.HandleFunc(TaskEmailDelivery, HandleEmailDeliveryTask)
		serveMux.HandleFunc(TaskFollowupScan, HandleFollowupScanTask)
	})

	return serveMux
}

func AsynqPeriodicTaskManager() *asynq.PeriodicTaskManager {
	onceTaskManager.Do(func() {
		manager, err := asynq.NewPeriodicTaskManager(asynq.PeriodicTaskManagerOpts{
			RedisConnOpt:               redisConnOpt(),
			PeriodicTaskConfigProvider: NewTasksFileProvider(),
			SchedulerOpts: &asynq.SchedulerOpts{
				Location: utils.DefaultLocation(),
			},
			SyncInterval: 5 * time.Minute,
		})
		if err != nil {
			sentry.CaptureException(err)
			slog.Error(fmt.Sprintf("Could not create periodic task manager: %v", err))
			os.Exit(1)
		}

		taskManager = manager
	})

	return taskManager
}
