// controllers/community_controller.go
package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
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

// CommunityController handles community lifecycle and membership
type CommunityController struct {
	DB       *mongo.Client
	notifier *services.NotificationService
}

// NewCommunityController creates a new community controller
func NewCommunityController(db *mongo.Client, notifier *services.NotificationService) *CommunityController {
	return &CommunityController{DB: db, notifier: notifier}
}

// CreateCommunity creates a community with the caller as organizer and first member
func (cc *CommunityController) CreateCommunity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.CommunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Community name must be between 3 and 100 characters",
		})
	}

	collection := config.GetCollection(cc.DB, "communities")

	count, err := collection.CountDocuments(ctx, bson.M{"name": req.Name, "isActive": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check community name",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "A community with this name already exists",
		})
	}

	now := time.Now()
	community := models.Community{
		Name:        utils.SanitizeInput(req.Name),
		Description: utils.SanitizeInput(req.Description),
		OrganizerID: userID,
		Members:     []primitive.ObjectID{userID},
		MemberCount: 1,
		Rules:       utils.SanitizeStringArray(req.Rules),
		Tags:        utils.SanitizeStringArray(req.Tags),
		Avatar:      req.Avatar,
		IsPrivate:   req.IsPrivate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := collection.InsertOne(ctx, community)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create community",
		})
	}
	community.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Community created successfully",
		Data:    community,
	})
}

// GetCommunities lists active communities, optionally filtered by tag
func (cc *CommunityController) GetCommunities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := utils.ParsePagination(c)

	filter := bson.M{"isActive": true}
	if tag := c.QueryParam("tag"); tag != "" {
		filter["tags"] = tag
	}

	collection := config.GetCollection(cc.DB, "communities")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count communities",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "memberCount", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(utils.Skip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve communities",
		})
	}
	defer cursor.Close(ctx)

	var communities []models.Community
	if err := cursor.All(ctx, &communities); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode communities",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Communities retrieved successfully",
		Data: models.PaginatedData{
			Items:      communities,
			Pagination: utils.NewPagination(page, limit, total),
		},
	})
}

// GetCommunity returns a single active community
func (cc *CommunityController) GetCommunity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid community ID",
		})
	}

	var community models.Community
	err = config.GetCollection(cc.DB, "communities").
		FindOne(ctx, bson.M{"_id": communityID, "isActive": true}).
		Decode(&community)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Community not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve community",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Community retrieved successfully",
		Data:    community,
	})
}

// UpdateCommunity edits community metadata; organizer only
func (cc *CommunityController) UpdateCommunity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid community ID",
		})
	}

	var req models.UpdateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	fields := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		fields["name"] = utils.SanitizeInput(req.Name)
	}
	if req.Description != "" {
		fields["description"] = utils.SanitizeInput(req.Description)
	}
	if req.Rules != nil {
		fields["rules"] = utils.SanitizeStringArray(req.Rules)
	}
	if req.Tags != nil {
		fields["tags"] = utils.SanitizeStringArray(req.Tags)
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if req.IsPrivate != nil {
		fields["isPrivate"] = *req.IsPrivate
	}

	collection := config.GetCollection(cc.DB, "communities")

	// organizerId in the filter keeps the permission check and the write atomic
	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": communityID, "organizerId": userID, "isActive": true},
		bson.M{"$set": fields},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update community",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Community not found or you are not the organizer",
		})
	}

	var community models.Community
	if err := collection.FindOne(ctx, bson.M{"_id": communityID}).Decode(&community); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Community updated but failed to reload",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Community updated successfully",
		Data:    community,
	})
}

// DeleteCommunity soft-deletes a community; organizer only
func (cc *CommunityController) DeleteCommunity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid community ID",
		})
	}

	result, err := config.GetCollection(cc.DB, "communities").UpdateOne(ctx,
		bson.M{"_id": communityID, "organizerId": userID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete community",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Community not found or you are not the organizer",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Community deleted successfully",
	})
}

// JoinCommunity adds the caller to the members set
func (cc *CommunityController) JoinCommunity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid community ID",
		})
	}

	collection := config.GetCollection(cc.DB, "communities")

	var community models.Community
	err = collection.FindOne(ctx, bson.M{"_id": communityID, "isActive": true}).Decode(&community)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Community not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve community",
		})
	}

	if community.IsMember(userID) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "You are already a member of this community",
		})
	}

	// $addToSet keeps the members set duplicate-free; the pre-image filter on
	// members keeps memberCount in step with the actual insert
	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": communityID, "isActive": true, "members": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"members": userID},
			"$inc":      bson.M{"memberCount": 1},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to join community",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "You are already a member of this community",
		})
	}

	go cc.notifier.Notify(community.OrganizerID, "New member", "Someone joined "+community.Name, "community_join", map[string]string{
		"communityId": communityID.Hex(),
	})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Joined community successfully",
	})
}

// LeaveCommunity removes the caller from the members set. The organizer can
// never leave their own community.
func (cc *CommunityController) LeaveCommunity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid community ID",
		})
	}

	collection := config.GetCollection(cc.DB, "communities")

	var community models.Community
	err = collection.FindOne(ctx, bson.M{"_id": communityID, "isActive": true}).Decode(&community)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Community not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve community",
		})
	}

	if community.IsOrganizer(userID) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "The organizer cannot leave the community. Delete it instead",
		})
	}
	if !community.IsMember(userID) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "You are not a member of this community",
		})
	}

	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": communityID, "isActive": true, "members": userID},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$inc":  bson.M{"memberCount": -1},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to leave community",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Left community successfully",
	})
}

// GetCommunityQRCode renders a PNG QR code linking to the community page
func (cc *CommunityController) GetCommunityQRCode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid community ID",
		})
	}

	count, err := config.GetCollection(cc.DB, "communities").
		CountDocuments(ctx, bson.M{"_id": communityID, "isActive": true})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Community not found",
		})
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	link := fmt.Sprintf("%s/communities/%s", frontendURL, communityID.Hex())

	code, err := qr.Encode(link, qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}
	code, err = barcode.Scale(code, 256, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code",
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code",
		})
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
