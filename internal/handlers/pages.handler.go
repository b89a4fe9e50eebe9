package handlers

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/cardealer/dealership-gateway/internal/model"
	xhttp "github.com/cardealer/dealership-gateway/pkg/http"
	"github.com/cardealer/dealership-gateway/pkg/logger"
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/car_sales_system.css
var stylesheet []byte

//go:embed assets/favicon.svg
var favicon []byte

// sessionCookie carries the token issued on login.
const sessionCookie = "session_token"

// assetMaxAge is the Cache-Control max-age for pages and static assets.
const assetMaxAge = 86400

type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.Session, error)
	Verify(ctx context.Context, token string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
}

type CatalogService interface {
	Options(ctx context.Context) (*model.CatalogOptions, error)
	Trades(ctx context.Context) ([]*model.TradeRow, error)
}

type PagesHandler struct {
	auth       AuthService
	catalog    CatalogService
	tpl        *template.Template
	sessionTTL time.Duration
}

func RegisterPageRoutes(r *router.Router, h *PagesHandler) {
	r.GET("/", h.Index)
	r.GET("/index.html", h.Index)
	r.GET("/login.html", h.Login)
	r.GET("/vehicles_management.html", h.Management)
	r.GET("/logout", h.Logout)
	r.GET("/car_sales_system.css", h.Stylesheet)
	r.GET("/favicon.ico", h.Favicon)
}

func NewPagesHandler(auth AuthService, catalog CatalogService, sessionTTL time.Duration) (*PagesHandler, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &PagesHandler{
		auth:       auth,
		catalog:    catalog,
		tpl:        tpl,
		sessionTTL: sessionTTL,
	}, nil
}

type managementData struct {
	ShowForm bool
	Options  *model.CatalogOptions
	Trades   []*model.TradeRow
}

type errorData struct {
	Code    int
	Message string
}

/* --------------------------------- Routes ----------------------------------- */

func (h *PagesHandler) Index(ctx *xhttp.RequestCtx) {
	h.renderCached(ctx, "index.html", nil)
}

func (h *PagesHandler) Login(ctx *xhttp.RequestCtx) {
	h.renderCached(ctx, "login.html", nil)
}

// Management serves the management page. A live session cookie wins;
// otherwise credentials in the query string are accepted and a fresh
// session cookie is set, which is how the login page hands over.
func (h *PagesHandler) Management(ctx *xhttp.RequestCtx) {
	session := h.resolveSession(ctx)
	if session == nil {
		// the front end expects a rendered page here, not a bare status
		h.renderError(ctx, xhttp.StatusOK, "Invalid username or password.")
		return
	}

	opts, err := h.catalog.Options(ctx)
	if err != nil {
		logger.Error("load catalog options failed", "error", err.Error())
		h.renderError(ctx, xhttp.StatusInternalServerError, "Server error.")
		return
	}
	trades, err := h.catalog.Trades(ctx)
	if err != nil {
		logger.Error("load trades failed", "error", err.Error())
		h.renderError(ctx, xhttp.StatusInternalServerError, "Server error.")
		return
	}

	h.render(ctx, xhttp.StatusOK, "vehicles_management.html", managementData{
		ShowForm: session.Role == model.RoleAdmin,
		Options:  opts,
		Trades:   trades,
	})
}

func (h *PagesHandler) Logout(ctx *xhttp.RequestCtx) {
	token := string(ctx.Request.Header.Cookie(sessionCookie))
	if err := h.auth.Logout(ctx, token); err != nil {
		logger.Error("logout failed", "error", err.Error())
	}

	expired := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(expired)
	expired.SetKey(sessionCookie)
	expired.SetPath("/")
	expired.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(expired)

	ctx.Redirect("/login.html", xhttp.StatusFound)
}

func (h *PagesHandler) Stylesheet(ctx *xhttp.RequestCtx) {
	ctx.Response.Header.Set("X-Content-Type-Options", "nosniff")
	ctx.Response.Header.Set("Content-Type", "text/css")
	ctx.Response.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", assetMaxAge))
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(stylesheet)
}

func (h *PagesHandler) Favicon(ctx *xhttp.RequestCtx) {
	ctx.Response.Header.Set("Content-Type", "image/svg+xml")
	ctx.Response.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", assetMaxAge))
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(favicon)
}

/* -------------------------------- Internals --------------------------------- */

func (h *PagesHandler) resolveSession(ctx *xhttp.RequestCtx) *model.Session {
	if token := string(ctx.Request.Header.Cookie(sessionCookie)); token != "" {
		if session, err := h.auth.Verify(ctx, token); err == nil {
			return session
		}
	}

	username := query(ctx, "username")
	password := query(ctx, "password")
	if username == "" || password == "" {
		return nil
	}
	session, err := h.auth.Login(ctx, username, password)
	if err != nil {
		return nil
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(sessionCookie)
	cookie.SetValue(session.Token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(time.Now().Add(h.sessionTTL))
	ctx.Response.Header.SetCookie(cookie)

	return session
}

func (h *PagesHandler) render(ctx *xhttp.RequestCtx, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("render template failed", "template", name, "error", err.Error())
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
		return
	}
	ctx.Response.Header.Set("Content-Type", "text/html; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(buf.Bytes())
}

func (h *PagesHandler) renderCached(ctx *xhttp.RequestCtx, name string, data any) {
	ctx.Response.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", assetMaxAge))
	h.render(ctx, xhttp.StatusOK, name, data)
}

func (h *PagesHandler) renderError(ctx *xhttp.RequestCtx, status int, msg string) {
	h.render(ctx, status, "error.html", errorData{Code: status, Message: msg})
}
