package cmd

import (
	"net/http"
	"time"

	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/glog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"audio-notes-service/internal/middlewares"
	"audio-notes-service/internal/service/jobs"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// setupWebSocketHandler 推送当前用户的任务变更，连接建立后先推送一次全量列表。
func setupWebSocketHandler(s *ghttp.Server, logger *glog.Logger, svc *jobs.Controller) *ghttp.Server {
	var (
		wsUpGrader = websocket.Upgrader{
			// TODO: 同源检查
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			},
		}
	)

	s.BindHandler("/job/ws", func(r *ghttp.Request) {
		connectID := uuid.NewString()
		r.Response.Header().Set("X-Api-Connect-Id", connectID)
		owner, err := middlewares.RequestOwner(r)
		if err != nil {
			r.Response.WriteStatus(http.StatusUnauthorized, err.Error())
			return
		}

		conn, err := wsUpGrader.Upgrade(r.Response.Writer, r.Request, nil)
		if err != nil {
			r.Response.Write(err.Error())
			return
		}
		defer conn.Close()

		reqCtx := r.Context()
		events, unsubscribe := svc.Board().Subscribe(owner, 64)
		defer unsubscribe()
		logger.Infof(reqCtx, "任务推送连接已建立，connect_id=%s, owner=%s", connectID, owner)

		// 读协程只处理 pong 和关闭帧
		closed := make(chan struct{})
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if !isNormalClosure(err) {
						logger.Warningf(reqCtx, "任务推送连接异常关闭，connect_id=%s: %v", connectID, err)
					}
					return
				}
			}
		}()

		write := func(v any) error {
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			return conn.WriteJSON(v)
		}
		for _, j := range svc.ListJobs(reqCtx, owner) {
			if err := write(jobs.Event{Type: jobs.EventUpsert, Job: j}); err != nil {
				return
			}
		}

		ping := time.NewTicker(wsPingPeriod)
		defer ping.Stop()
		for {
			select {
			case <-closed:
				logger.Infof(reqCtx, "任务推送连接关闭，connect_id=%s", connectID)
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := write(ev); err != nil {
					logger.Warningf(reqCtx, "推送任务事件失败，connect_id=%s: %v", connectID, err)
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	})
	return s
}

func isNormalClosure(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
		return true
	}
	return false
}
