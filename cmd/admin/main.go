// The admin tool runs operator actions that have no in-app surface. The only
// one today is approving a pending programmer account, which moves it to
// trial and unlocks search and messaging.
package main

import (
	"context"
	"flag"

	log "github.com/sirupsen/logrus"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/podiumlink/podiumlink/internal/actors/memstore"
	mongoactor "github.com/podiumlink/podiumlink/internal/actors/mongo"
	"github.com/podiumlink/podiumlink/internal/config"
	"github.com/podiumlink/podiumlink/internal/core/usecase"
)

var (
	approve = flag.String("approve", "", "id of the programmer account to approve")
)

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
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
		return err
	}
	profiles := usecase.NewProfileService(usecase.ProfileServiceArgs{
		Artists:     store,
		Programmers: store,
		Identities:  memstore.New(),
	})

	if err := profiles.ApproveProgrammer(ctx, *approve); err != nil {
		return err
	}
	log.WithField("programmer-id", *approve).Info("programmer account approved")
	return nil
}

func main() {
	flag.Parse()
	if *approve == "" {
		flag.Usage()
		return
	}
	if err := run(); err != nil {
		log.WithError(err).Fatal("admin command failed")
	}
}
