package middlewares

import (
	"strings"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/net/ghttp"

	"audio-notes-service/internal/consts"
)

// RequestOwner 返回网关注入的调用方身份，缺失时返回 CodeNotAuthorized。
func RequestOwner(r *ghttp.Request) (string, error) {
	owner := strings.TrimSpace(r.Header.Get(consts.UserIDHeader))
	if owner == "" {
		return "", gerror.NewCodef(gcode.CodeNotAuthorized, "缺少 %s 请求头", consts.UserIDHeader)
	}
	return owner, nil
}

// IdentityMiddleware 拒绝没有调用方身份的请求，需放在 MiddlewareHandlerResponse 之后。
func IdentityMiddleware(r *ghttp.Request) {
	owner, err := RequestOwner(r)
	if err != nil {
		r.SetError(err)
		return
	}
	r.SetCtxVar(consts.CtxKeyOwner, owner)
	r.Middleware.Next()
}
