package main

import (
	"context"
	"flag"
	"time"

	"github.com/shupin-market/internal/config"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/provider"
)

func main() {
	var timeoutSeconds int
	var sweepCategories bool
	flag.IntVar(&timeoutSeconds, "timeout", 300, "执行超时（秒）")
	flag.BoolVar(&sweepCategories, "sweep-categories", false, "同时清理无商品引用的分类")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	container := provider.NewContainer(cfg)
	if container.Index == nil {
		stdLog.Fatalf("搜索索引未配置，无法执行重建")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	count, err := container.ProductService.Reindex(ctx)
	if err != nil {
		stdLog.Fatalf("索引重建失败: %v", err)
	}
	stdLog.Printf("索引重建完成，共同步 %d 个商品", count)

	if sweepCategories {
		removed, err := container.CategoryService.Sweep(ctx)
		if err != nil {
			stdLog.Fatalf("分类清理失败: %v", err)
		}
		stdLog.Printf("分类清理完成，共移除 %d 个空分类", removed)
	}
}
