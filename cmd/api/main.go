// @title           PolicyChat API
// @version         1.0
// @description     Asynchronous company policy assistant - ingests policy documents and answers questions grounded in them
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/internal/data/store"
	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	jobmodel "github.com/akolanti/PolicyChat/internal/domain/jobModel"
	"github.com/akolanti/PolicyChat/internal/handlers"
	"github.com/akolanti/PolicyChat/internal/job"
	"github.com/akolanti/PolicyChat/internal/mcpserver"
	"github.com/akolanti/PolicyChat/internal/rag"
	"github.com/akolanti/PolicyChat/internal/rag/llm"
	"github.com/akolanti/PolicyChat/internal/rag/llm/gemini"
	"github.com/akolanti/PolicyChat/internal/rag/llm/openai"
	"github.com/akolanti/PolicyChat/internal/server"
	"github.com/akolanti/PolicyChat/internal/worker"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	redisJobs := store.GetRedisJobStore(serviceContext)
	redisMessages := store.GetRedisMessageStore(serviceContext)
	if redisJobs == nil || redisMessages == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
	} else {
		serviceConfig.JobStore = redisJobs
		serviceConfig.MessageStore = redisMessages
	}
	service := job.InitJobService(serviceConfig)

	//document knowledge base - reload persisted documents before serving
	var documents docModel.DocumentStore
	if redisDocuments := store.GetRedisDocumentStore(serviceContext); redisDocuments != nil {
		documents = redisDocuments
	} else {
		logger.Error("Redis document store is offline, documents will not survive restarts")
		documents = store.InitInMemoryDocumentStore()
	}
	documents.Load(serviceContext)

	llmProvider := selectLLMProvider(serviceContext, logger)
	if llmProvider == nil {
		logger.Error("LLM provider failed to initialize. Shutting down.")
		return
	}

	ragService := rag.NewService(documents, llmProvider)

	handlers.InitJobHandler(service, documents)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	mcpServer := mcpserver.NewServer(documents)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, mcpServer.Handler())

	<-stopExecution
	logger.Info("Server stopped")
}

func selectLLMProvider(ctx context.Context, logger *logger_i.Logger) llm.Provider {
	switch config.LLMProviderName {
	case "openai":
		logger.Info("Using OpenAI chat provider", "model", config.OpenAIModelName)
		return openai.GetOpenAIClient(ctx, config.OpenAIModelName, config.OpenAIAPIKey)
	default:
		logger.Info("Using Gemini chat provider", "model", config.GeminiModelName)
		return gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey)
	}
}
