package main

import (
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/cache"
	"app/internal/infra/db"
	"app/internal/infra/eventbus"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := infraRepo.AutoMigrate(gormDB); err != nil {
		panic(err)
	}
	if err := infraRepo.SeedReferenceData(gormDB); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	ingredientRepo := infraRepo.NewIngredientGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	unitRepo := infraRepo.NewUnitGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//イベントバス（ログ出力）
	bus := eventbus.NewLogEventBus()

	//Redisは任意。設定があるときだけ参照データキャッシュを使う
	var refCache usecase.ReferenceCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		refCache = cache.NewReferenceCache(client)
	}

	//Usecase生成
	ingredientUC := usecase.NewIngredientUsecase(ingredientRepo, categoryRepo, unitRepo, txManager, bus)
	referenceUC := usecase.NewReferenceUsecase(categoryRepo, unitRepo, refCache)

	//Handler生成
	ingredientH := handler.NewIngredientHandler(ingredientUC)
	referenceH := handler.NewReferenceHandler(referenceUC)

	//Server起動
	e := server.New(cfg, ingredientH, referenceH)

	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
