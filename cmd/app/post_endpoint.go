package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/middleware"
	"github.com/beeynow/ADUSTECH/internal/services"
)

type createPostRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64"`
	Category    string `json:"category"`
}

type commentRequest struct {
	Text string `json:"text"`
}

func paramObjectID(c echo.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func createPostHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(createPostRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		su := middleware.CurrentUser(c)
		id, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		p, err := postSvc.Create(c.Request().Context(), id, su.Name, req.Text, req.ImageBase64, req.Category)
		if err != nil {
			return httpError(c, err, "error creating post")
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "post created", "post": p})
	}
}

func listPostsHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		posts, total, err := postSvc.List(c.Request().Context(),
			c.QueryParam("q"), c.QueryParam("category"), page, limit)
		if err != nil {
			return httpError(c, err, "error listing posts")
		}
		if page < 1 {
			page = 1
		}
		return c.JSON(http.StatusOK, echo.Map{"posts": posts, "total": total, "page": page})
	}
}

func getPostHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		p, err := postSvc.Get(c.Request().Context(), id)
		if err != nil {
			return httpError(c, err, "error fetching post")
		}
		return c.JSON(http.StatusOK, echo.Map{"post": p})
	}
}

func toggleLikeHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		count, liked, err := postSvc.ToggleLike(c.Request().Context(), id, userID)
		if err != nil {
			return httpError(c, err, "error toggling like")
		}
		return c.JSON(http.StatusOK, echo.Map{"likes": count, "liked": liked})
	}
}

func toggleRepostHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		count, reposted, err := postSvc.ToggleRepost(c.Request().Context(), id, userID)
		if err != nil {
			return httpError(c, err, "error toggling repost")
		}
		return c.JSON(http.StatusOK, echo.Map{"reposts": count, "reposted": reposted})
	}
}

func listCommentsHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		comments, err := postSvc.ListComments(c.Request().Context(), id)
		if err != nil {
			return httpError(c, err, "error fetching comments")
		}
		return c.JSON(http.StatusOK, echo.Map{"comments": comments})
	}
}

func addCommentHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		req := new(commentRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		comment, err := postSvc.AddComment(c.Request().Context(), id, userID, su.Name, req.Text)
		if err != nil {
			return httpError(c, err, "error adding comment")
		}
		return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
	}
}

func toggleCommentLikeHandler(postSvc *services.PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		commentID, ok := paramObjectID(c, "commentId")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid comment id"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		count, liked, err := postSvc.ToggleCommentLike(c.Request().Context(), id, commentID, userID)
		if err != nil {
			return httpError(c, err, "error toggling like on comment")
		}
		return c.JSON(http.StatusOK, echo.Map{"likes": count, "liked": liked})
	}
}

func registerPostRoutes(g *echo.Group, postSvc *services.PostService) {
	// public reads
	g.GET("/posts", listPostsHandler(postSvc))
	g.GET("/posts/:id", getPostHandler(postSvc))
	g.GET("/posts/:id/comments", listCommentsHandler(postSvc))

	// session-authenticated mutations
	posts := g.Group("/posts")
	posts.Use(middleware.RequireSession)
	posts.POST("", createPostHandler(postSvc))
	posts.POST("/:id/like", toggleLikeHandler(postSvc))
	posts.POST("/:id/repost", toggleRepostHandler(postSvc))
	posts.POST("/:id/comments", addCommentHandler(postSvc))
	posts.POST("/:id/comments/:commentId/like", toggleCommentLikeHandler(postSvc))
}
