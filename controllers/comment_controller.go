// controllers/comment_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oausconnect/backend/config"
	"github.com/oausconnect/backend/models"
	"github.com/oausconnect/backend/services"
	"github.com/oausconnect/backend/utils"
)

// CommentController handles nested comments and comment voting
type CommentController struct {
	DB       *mongo.Client
	notifier *services.NotificationService
}

// NewCommentController creates a new comment controller
func NewCommentController(db *mongo.Client, notifier *services.NotificationService) *CommentController {
	return &CommentController{DB: db, notifier: notifier}
}

// CreateComment adds a comment (or a reply when parentCommentId is set)
func (cm *CommentController) CreateComment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	contentID, err := primitive.ObjectIDFromHex(c.Param("contentId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid content ID",
		})
	}

	var req models.CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Comment content is required",
		})
	}

	contentColl := config.GetCollection(cm.DB, "content")

	var content models.Content
	err = contentColl.FindOne(ctx, bson.M{"_id": contentID}).Decode(&content)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Content not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve content",
		})
	}

	now := time.Now()
	comment := models.Comment{
		ContentID: contentID,
		AuthorID:  userID,
		Body:      utils.SanitizeInput(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	commentColl := config.GetCollection(cm.DB, "comments")

	// Replies must point at a comment under the same content item
	if req.ParentCommentID != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentCommentID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid parent comment ID",
			})
		}

		var parent models.Comment
		err = commentColl.FindOne(ctx, bson.M{"_id": parentID, "contentId": contentID}).Decode(&parent)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Parent comment not found",
			})
		}
		comment.ParentCommentID = &parentID
	}

	result, err := commentColl.InsertOne(ctx, comment)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create comment",
		})
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)

	_, err = contentColl.UpdateOne(ctx, bson.M{"_id": contentID}, bson.M{"$push": bson.M{"comments": comment.ID}})
	if err != nil {
		c.Logger().Errorf("Failed to link comment %s to content: %v", comment.ID.Hex(), err)
	}

	// Tell the author someone commented on their post
	if content.AuthorID != userID {
		go cm.notifier.Notify(content.AuthorID, "New comment", "Someone commented on your post", "new_comment", map[string]string{
			"contentId": contentID.Hex(),
			"commentId": comment.ID.Hex(),
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Comment created successfully",
		Data:    comment,
	})
}

// GetComments returns a paginated list of comments for a content item
func (cm *CommentController) GetComments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	contentID, err := primitive.ObjectIDFromHex(c.Param("contentId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid content ID",
		})
	}

	page, limit := utils.ParsePagination(c)
	filter := bson.M{"contentId": contentID}

	collection := config.GetCollection(cm.DB, "comments")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count comments",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(utils.Skip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve comments",
		})
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode comments",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Comments retrieved successfully",
		Data: models.PaginatedData{
			Items:      comments,
			Pagination: utils.NewPagination(page, limit, total),
		},
	})
}

// UpdateComment edits a comment; only the author may update
func (cm *CommentController) UpdateComment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid comment ID",
		})
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Comment content is required",
		})
	}

	collection := config.GetCollection(cm.DB, "comments")

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": commentID, "authorId": userID},
		bson.M{"$set": bson.M{"content": utils.SanitizeInput(req.Content), "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update comment",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Comment not found or you are not the author",
		})
	}

	var comment models.Comment
	if err := collection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Comment updated but failed to reload",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Comment updated successfully",
		Data:    comment,
	})
}

// DeleteComment removes a comment; only the author may delete
func (cm *CommentController) DeleteComment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid comment ID",
		})
	}

	collection := config.GetCollection(cm.DB, "comments")

	var comment models.Comment
	err = collection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Comment not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve comment",
		})
	}
	if comment.AuthorID != userID {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You are not the author of this comment",
		})
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": commentID}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete comment",
		})
	}

	_, err = config.GetCollection(cm.DB, "content").UpdateOne(ctx,
		bson.M{"_id": comment.ContentID},
		bson.M{"$pull": bson.M{"comments": commentID}},
	)
	if err != nil {
		c.Logger().Errorf("Failed to unlink comment %s from content: %v", commentID.Hex(), err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Comment deleted successfully",
	})
}

// VoteComment applies toggle vote semantics to a comment in one UpdateOne
func (cm *CommentController) VoteComment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid comment ID",
		})
	}

	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	collection := config.GetCollection(cm.DB, "comments")

	var comment models.Comment
	err = collection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Comment not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve comment",
		})
	}

	change, err := utils.ComputeVoteChange(comment.HasUpvoted(userID), comment.HasDownvoted(userID), req.VoteType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if !change.IsZero() {
		if _, err := collection.UpdateOne(ctx, bson.M{"_id": commentID}, utils.BuildVoteUpdate(change, userID)); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to apply vote",
			})
		}
	}

	if err := collection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Vote applied but failed to reload comment",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vote recorded",
		Data: models.VoteResult{
			Upvotes:   comment.Upvotes,
			Downvotes: comment.Downvotes,
			Upvoted:   comment.HasUpvoted(userID),
			Downvoted: comment.HasDownvoted(userID),
		},
	})
}
