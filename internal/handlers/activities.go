package handlers

import (
	"errors"

	"github.com/arnold/activities-api/internal/middleware"
	"github.com/arnold/activities-api/internal/models"
	"github.com/arnold/activities-api/internal/observability"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	errActivityNotFound     = fiber.NewError(fiber.StatusNotFound, "Activity not found")
	errNotEnoughPermissions = fiber.NewError(fiber.StatusBadRequest, "Not enough permissions")
)

type pageQuery struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0"`
}

// visibleTo restricts a query to the rows user may see.
func visibleTo(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user.IsSuperuser {
			return db
		}
		return db.Where("owner_id = ?", user.ID)
	}
}

// loadActivity fetches the activity named by the :id param and checks that
// the current user owns it or is a superuser.
func loadActivity(c *fiber.Ctx) (*models.Activity, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}

	var activity models.Activity
	if err := middleware.GetSession(c).First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errActivityNotFound
		}
		return nil, err
	}

	user := middleware.GetCurrentUser(c)
	if !user.IsSuperuser && activity.OwnerID != user.ID {
		return nil, errNotEnoughPermissions
	}
	return &activity, nil
}

// ListActivities returns one page of the caller's activities (all of them
// for a superuser) together with the total count of that set.
func ListActivities(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	db := middleware.GetSession(c)

	q := pageQuery{Skip: 0, Limit: 100}
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid pagination parameters")
	}
	if err := validateStruct(q); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Activity{}).Scopes(visibleTo(user)).Count(&count).Error; err != nil {
		return err
	}

	activities := []models.Activity{}
	if err := db.Scopes(visibleTo(user)).
		Order("created_at ASC").
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&activities).Error; err != nil {
		return err
	}

	return c.JSON(models.ActivitiesPublic{
		Data:  activities,
		Count: count,
	})
}

func GetActivity(c *fiber.Ctx) error {
	activity, err := loadActivity(c)
	if err != nil {
		return err
	}
	return c.JSON(activity)
}

// CreateActivity stores a new activity owned by the caller.
func CreateActivity(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	db := middleware.GetSession(c)

	var req models.ActivityCreate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	activity := req.NewActivity(user.ID)
	if err := db.Create(&activity).Error; err != nil {
		return err
	}
	if err := db.First(&activity, "id = ?", activity.ID).Error; err != nil {
		return err
	}
	observability.RecordActivityMutation(observability.OpCreate)

	return c.JSON(activity)
}

// UpdateActivity applies only the fields present in the payload. The payload
// is validated before the activity is looked up.
func UpdateActivity(c *fiber.Ctx) error {
	var req models.ActivityUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	activity, err := loadActivity(c)
	if err != nil {
		return err
	}
	db := middleware.GetSession(c)

	if changes := req.Changes(); len(changes) > 0 {
		if err := db.Model(activity).Updates(changes).Error; err != nil {
			return err
		}
	}
	if err := db.First(activity, "id = ?", activity.ID).Error; err != nil {
		return err
	}
	observability.RecordActivityMutation(observability.OpUpdate)

	return c.JSON(activity)
}

func DeleteActivity(c *fiber.Ctx) error {
	activity, err := loadActivity(c)
	if err != nil {
		return err
	}

	if err := middleware.GetSession(c).Delete(activity).Error; err != nil {
		return err
	}
	observability.RecordActivityMutation(observability.OpDelete)

	return c.JSON(models.Message{Message: "Activity deleted successfully"})
}
