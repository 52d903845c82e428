package main

import (
	"context"

	config "github.com/davicafu/brokerlive/internal/config"

	brokerApp "github.com/davicafu/brokerlive/internal/broker/application"
	brokerHttp "github.com/davicafu/brokerlive/internal/broker/infra/inbound/http"
	brokerCache "github.com/davicafu/brokerlive/internal/broker/infra/outbound/cache"
	brokerRepo "github.com/davicafu/brokerlive/internal/broker/infra/outbound/memory"
	infraEvents "github.com/davicafu/brokerlive/internal/infra/events"

	"github.com/davicafu/brokerlive/pkg/logger"
	sharedBus "github.com/davicafu/brokerlive/shared/platform/bus"
	sharedCache "github.com/davicafu/brokerlive/shared/platform/cache"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ---------------- Main ----------------
func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger.Init(cfg.LogLevel) // inicializa zap
	log := logger.Logger()    // obtiene logger estructurado
	defer log.Sync()          // flush buffers al salir

	// ---------------- Store ----------------
	// El roster vive en memoria: volátil a propósito, no hay persistencia.
	repo := brokerRepo.NewBrokerRepoMemory()

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		cacheInstance = brokerCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = brokerCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Events ---------------
	// El bus en memoria siempre existe: es el fan-out hacia las sesiones
	// conectadas al stream. Kafka, si está activo, espeja los mismos eventos.
	inMemoryBus := infraEvents.NewInMemoryEventBus(cfg.StreamBuffer, log)

	var publisher sharedBus.EventBus = inMemoryBus
	if cfg.UseKafka {
		log.Info("🚀 Espejando eventos de cambio en Kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)

		writer := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer writer.Close()

		kafkaPublisher := infraEvents.NewKafkaPublisher(writer, log)
		publisher = infraEvents.NewFanOutPublisher(log, inMemoryBus, kafkaPublisher)
	}

	// --------------- Servicio --------------
	brokerService := brokerApp.NewBrokerService(repo, cacheInstance, publisher, log)

	// ---------------- HTTP ----------------
	brokerHandler := brokerHttp.NewBrokerHandler(brokerService)
	streamHandler := brokerHttp.NewStreamHandler(brokerService, inMemoryBus, log)

	router := gin.Default()
	brokerHttp.RegisterBrokerRoutes(router, brokerHandler, streamHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
