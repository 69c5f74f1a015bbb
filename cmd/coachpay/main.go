package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/coachably/coachpay/internal/config"
	"github.com/coachably/coachpay/internal/fees"
	"github.com/coachably/coachpay/internal/lock"
	"github.com/coachably/coachpay/internal/logger"
	obsmetrics "github.com/coachably/coachpay/internal/observability/metrics"
	"github.com/coachably/coachpay/internal/payment"
	"github.com/coachably/coachpay/internal/purchase"
	"github.com/coachably/coachpay/internal/reference"
	"github.com/coachably/coachpay/internal/server"
	"github.com/coachably/coachpay/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		lock.Module,
		obsmetrics.Module,

		reference.Module,
		fees.Module,
		purchase.Module,
		payment.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
