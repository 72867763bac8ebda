package handlers

import (
	"VideoTube.com/cmd/interaction/service"
)

// Handler /comments 与 /likes 路由
type Handler struct {
	comments *service.CommentService
	likes    *service.LikeActionService
}

func New(comments *service.CommentService, likes *service.LikeActionService) *Handler {
	return &Handler{comments: comments, likes: likes}
}

type CommentParam struct {
	Content string `json:"content" form:"content"`
}

type ListCommentParam struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}
