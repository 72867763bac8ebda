package handlers

import (
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/config"
)

// Handler /videos 路由
type Handler struct {
	svc    *service.VideoService
	server config.Server
}

func New(svc *service.VideoService, server config.Server) *Handler {
	return &Handler{svc: svc, server: server}
}

type VideoListParam struct {
	Page     string `query:"page"`
	Limit    string `query:"limit"`
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	UserID   string `query:"userId"`
}
