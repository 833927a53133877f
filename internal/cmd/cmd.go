package cmd

import (
	"context"
	"fmt"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/gcmd"
	"github.com/gogf/gf/v2/os/gctx"

	"audio-notes-service/internal/controller/job"
	"audio-notes-service/internal/dao"
	"audio-notes-service/internal/middlewares"
	"audio-notes-service/internal/service/jobs"
	"audio-notes-service/internal/service/notes"
	"audio-notes-service/internal/service/storage"
)

var (
	Main = gcmd.Command{
		Name:  "main",
		Usage: "main",
		Brief: "start http server",
		Func: func(ctx context.Context, parser *gcmd.Parser) (err error) {
			fmt.Println(`
    _             _ _         _   _       _
   / \  _   _  __| (_) ___   | \ | | ___ | |_ ___  ___
  / _ \| | | |/ _' | |/ _ \  |  \| |/ _ \| __/ _ \/ __|
 / ___ \ |_| | (_| | | (_) | | |\  | (_) | ||  __/\__ \
/_/   \_\__,_|\__,_|_|\___/  |_| \_|\___/ \__\___||___/
					 `)
			fmt.Println("Audio Notes Service")
			fmt.Println()

			logger := g.Log()
			if err = dao.Job.EnsureSchema(ctx); err != nil {
				return err
			}
			objects, err := storage.New(ctx)
			if err != nil {
				return err
			}
			generator, err := notes.New(ctx)
			if err != nil {
				return err
			}

			// 轮询协程不跟随请求结束，服务退出时统一取消
			rootCtx, cancel := context.WithCancel(gctx.NeverDone(ctx))
			defer cancel()
			svc := jobs.New(rootCtx, jobs.NewDaoRepository(), objects, generator, jobs.LoadOptions(ctx))

			s := g.Server()
			s.SetPort(g.Cfg().MustGet(ctx, "server.port", 8000).Int())
			s.SetClientMaxBodySize(svc.Options().MaxUploadSize * 4)
			s.Use(middlewares.BrotliMiddleware)
			s.Use(ghttp.MiddlewareCORS)
			s = setupWebSocketHandler(s, logger, svc)
			oai := s.GetOpenApi()
			oai.Config.CommonResponse = ghttp.DefaultHandlerResponse{}
			oai.Config.CommonResponseDataField = "Data"
			s.SetOpenApiPath(g.Cfg().MustGet(ctx, "server.openapiPath").String())
			s.SetSwaggerPath(g.Cfg().MustGet(ctx, "server.swaggerPath").String())

			s.Group("/job", func(group *ghttp.RouterGroup) {
				group.Middleware(ghttp.MiddlewareHandlerResponse, middlewares.IdentityMiddleware)
				group.Bind(
					job.NewV1(svc),
				)
			})

			go func() {
				if _, err := svc.Reconcile(rootCtx); err != nil {
					logger.Errorf(rootCtx, "启动时恢复任务失败：%+v", err)
				}
			}()

			s.Run()
			cancel()
			svc.Wait()
			return nil
		},
	}
)
