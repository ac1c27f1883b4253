// controllers/content_controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oausconnect/backend/config"
	"github.com/oausconnect/backend/models"
	"github.com/oausconnect/backend/utils"
)

// ContentController handles the content feed and voting
type ContentController struct {
	DB *mongo.Client
}

// NewContentController creates a new content controller
func NewContentController(db *mongo.Client) *ContentController {
	return &ContentController{DB: db}
}

// CreateContent creates a new feed post
func (cc *ContentController) CreateContent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.ContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title and content are required",
		})
	}

	now := time.Now()
	content := models.Content{
		AuthorID:  userID,
		Title:     utils.SanitizeInput(req.Title),
		Body:      utils.SanitizeInput(req.Content),
		Tags:      utils.SanitizeStringArray(req.Tags),
		Media:     req.Media,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Posting into a community requires membership
	if req.CommunityID != "" {
		communityID, err := primitive.ObjectIDFromHex(req.CommunityID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid community ID",
			})
		}

		var community models.Community
		err = config.GetCollection(cc.DB, "communities").FindOne(ctx, bson.M{"_id": communityID, "isActive": true}).Decode(&community)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Community not found",
			})
		}
		if !community.IsMember(userID) && !community.IsOrganizer(userID) {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "You must join the community before posting",
			})
		}
		content.CommunityID = &communityID
	}

	result, err := config.GetCollection(cc.DB, "content").InsertOne(ctx, content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create content",
		})
	}
	content.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Content created successfully",
		Data:    content,
	})
}

// GetFeed returns a paginated page of content, newest first
func (cc *ContentController) GetFeed(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := utils.ParsePagination(c)

	filter := bson.M{}
	if tag := strings.TrimSpace(c.QueryParam("tag")); tag != "" {
		filter["tags"] = tag
	}
	if communityParam := c.QueryParam("communityId"); communityParam != "" {
		communityID, err := primitive.ObjectIDFromHex(communityParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid community ID",
			})
		}
		filter["communityId"] = communityID
	}

	collection := config.GetCollection(cc.DB, "content")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count content",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(utils.Skip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve content",
		})
	}
	defer cursor.Close(ctx)

	var items []models.Content
	if err := cursor.All(ctx, &items); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode content",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Content retrieved successfully",
		Data: models.PaginatedData{
			Items:      items,
			Pagination: utils.NewPagination(page, limit, total),
		},
	})
}

// GetContent returns a single content item and counts the view
func (cc *ContentController) GetContent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid content ID",
		})
	}

	collection := config.GetCollection(cc.DB, "content")

	var content models.Content
	err = collection.FindOne(ctx, bson.M{"_id": contentID}).Decode(&content)
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

	// Views go through the Redis write-behind counter; fall back to a
	// direct $inc when Redis is down
	if pending, err := utils.IncrementView(config.GetRedisClient(), contentID); err == nil {
		content.Views += pending
	} else {
		_, _ = collection.UpdateOne(ctx, bson.M{"_id": contentID}, bson.M{"$inc": bson.M{"views": 1}})
		content.Views++
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Content retrieved successfully",
		Data:    content,
	})
}

// UpdateContent edits a post; only the author may update
func (cc *ContentController) UpdateContent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid content ID",
		})
	}

	var req models.UpdateContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	fields := bson.M{"updatedAt": time.Now()}
	if req.Title != "" {
		fields["title"] = utils.SanitizeInput(req.Title)
	}
	if req.Content != "" {
		fields["content"] = utils.SanitizeInput(req.Content)
	}
	if req.Tags != nil {
		fields["tags"] = utils.SanitizeStringArray(req.Tags)
	}

	collection := config.GetCollection(cc.DB, "content")

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": contentID, "authorId": userID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update content",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Content not found or you are not the author",
		})
	}

	var content models.Content
	if err := collection.FindOne(ctx, bson.M{"_id": contentID}).Decode(&content); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Content updated but failed to reload",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Content updated successfully",
		Data:    content,
	})
}

// DeleteContent removes a post and its comments; only the author may delete
func (cc *ContentController) DeleteContent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid content ID",
		})
	}

	collection := config.GetCollection(cc.DB, "content")

	result, err := collection.DeleteOne(ctx, bson.M{"_id": contentID, "authorId": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete content",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Content not found or you are not the author",
		})
	}

	// Cascade: comments of a hard-deleted post go with it
	_, err = config.GetCollection(cc.DB, "comments").DeleteMany(ctx, bson.M{"contentId": contentID})
	if err != nil {
		c.Logger().Errorf("Failed to cascade comment deletion for content %s: %v", contentID.Hex(), err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Content deleted successfully",
	})
}

// VoteContent applies toggle vote semantics to a content item. The whole
// vote settles in a single UpdateOne so counters stay consistent with set
// membership.
func (cc *ContentController) VoteContent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	contentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid content ID",
		})
	}

	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	collection := config.GetCollection(cc.DB, "content")

	var content models.Content
	err = collection.FindOne(ctx, bson.M{"_id": contentID}).Decode(&content)
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

	change, err := utils.ComputeVoteChange(content.HasUpvoted(userID), content.HasDownvoted(userID), req.VoteType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if !change.IsZero() {
		if _, err := collection.UpdateOne(ctx, bson.M{"_id": contentID}, utils.BuildVoteUpdate(change, userID)); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to apply vote",
			})
		}
	}

	if err := collection.FindOne(ctx, bson.M{"_id": contentID}).Decode(&content); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Vote applied but failed to reload content",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vote recorded",
		Data: models.VoteResult{
			Upvotes:   content.Upvotes,
			Downvotes: content.Downvotes,
			Upvoted:   content.HasUpvoted(userID),
			Downvoted: content.HasDownvoted(userID),
		},
	})
}
