package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/podiumlink/podiumlink/internal/actors/httpapi"
	"github.com/podiumlink/podiumlink/internal/actors/memstore"
	minioactor "github.com/podiumlink/podiumlink/internal/actors/minio"
	mongoactor "github.com/podiumlink/podiumlink/internal/actors/mongo"
	produceractor "github.com/podiumlink/podiumlink/internal/actors/pubsub/producer"
	"github.com/podiumlink/podiumlink/internal/actors/realtime"
	"github.com/podiumlink/podiumlink/internal/config"
	"github.com/podiumlink/podiumlink/internal/core/ports"
	"github.com/podiumlink/podiumlink/internal/core/usecase"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	// Only log the DebugLevel severity or above.
	log.SetLevel(log.DebugLevel)
}

func run() error {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	clientOptions := options.Client().ApplyURI(cfg.MongoURL)
	db, err := mongodriver.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}
	if err := db.Ping(ctx, nil); err != nil {
		log.WithError(err).Error("db does not appear to be reachable")
		return err
	}
	defer db.Disconnect(ctx)

	store, err := mongoactor.NewStore(mongoactor.StoreArgs{Database: db.Database(cfg.MongoDatabase)})
	if err != nil {
		log.WithError(err).Error("could not initialize mongo actor")
		return err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Error("could not ensure indexes")
		return err
	}

	pubsubClient, err := pubsub.NewClient(ctx, cfg.PubsubProjectID)
	if err != nil {
		return err
	}
	defer pubsubClient.Close()
	producer, err := produceractor.NewProducer(pubsubClient.Topic(cfg.PubsubTopic))
	if err != nil {
		return err
	}

	var media ports.MediaStore
	if cfg.MinioEndpoint != "" {
		mediaStore, err := minioactor.NewMediaStore(minioactor.MediaStoreArgs{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioAccessKeyID,
			SecretAccessKey: cfg.MinioSecretKey,
			UseSSL:          cfg.MinioUseSSL,
			Bucket:          cfg.MinioBucket,
			PublicBaseURL:   cfg.MinioPublicBaseURL,
		})
		if err != nil {
			log.WithError(err).Error("could not initialize media store")
			return err
		}
		if err := mediaStore.EnsureBucket(ctx); err != nil {
			log.WithError(err).Error("could not ensure media bucket")
			return err
		}
		media = mediaStore
	} else {
		log.Info("minio endpoint not configured, media uploads disabled")
	}

	sessions := memstore.New()
	profiles := usecase.NewProfileService(usecase.ProfileServiceArgs{
		Artists:     store,
		Programmers: store,
		Identities:  sessions,
		Media:       media,
	})
	search := usecase.NewSearchService(usecase.SearchServiceArgs{Artists: store})
	messaging := usecase.NewMessagingService(usecase.MessagingServiceArgs{
		Conversations: store,
		Watcher:       store,
		Sender:        producer,
	})
	recommendations := usecase.NewRecommendationService(usecase.RecommendationServiceArgs{
		Recommendations: store,
		Sender:          producer,
	})

	hub := realtime.NewHub()
	realtimeHandler := realtime.NewHandler(realtime.HandlerArgs{
		Hub:      hub,
		Watcher:  messaging,
		Sessions: sessions,
	})

	server := httpapi.NewServer(httpapi.ServerArgs{
		Addr:            cfg.HTTPAddr,
		Profiles:        profiles,
		Search:          search,
		Messaging:       messaging,
		Recommendations: recommendations,
		Sessions:        sessions,
		Realtime:        realtimeHandler,
	})

	go func() {
		if err := server.Run(); err != nil {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", cfg.HTTPAddr).
		Info("server up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the server")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	// Stop server
	hub.Shutdown()
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
