package teamController

import (
	"errors"
	"examportal/config"
	"examportal/middleware"
	"examportal/models"
	validators "examportal/validators/team"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Controller struct {
	Db  *gorm.DB
	Cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *Controller {
	return &Controller{Db: db, Cfg: cfg}
}

// loadActor fetches the acting admin and refuses deactivated accounts,
// whose tokens may still be live.
func (ctrl *Controller) loadActor(c *fiber.Ctx) (*models.Admin, error) {
	adminID, ok := c.Locals("adminId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var actor models.Admin
	if err := ctrl.Db.First(&actor, adminID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if !actor.IsActive {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "This account has been deactivated!", nil)
	}
	return &actor, nil
}

func canManageTeam(role string) bool {
	return role == models.RoleOwner || role == models.RoleAdmin
}

// MemberEntry is one team member with the inviter's display name resolved.
type MemberEntry struct {
	ID            uint      `json:"id"`
	AdminID       string    `json:"admin_id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	InvitedByName string    `json:"invited_by_name,omitempty"`
}

// GetTeam lists the members of the actor's organization, oldest first.
func (ctrl *Controller) GetTeam(c *fiber.Ctx) error {
	actor, err := ctrl.loadActor(c)
	if err != nil {
		return err
	}

	var members []models.Admin
	if actor.OrganizationID != nil {
		if err := ctrl.Db.Where("organization_id = ?", *actor.OrganizationID).Order("created_at asc").Find(&members).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team data!", nil)
		}
	} else {
		members = []models.Admin{*actor}
	}

	// Resolve inviter names in one pass.
	inviterNames := make(map[uint]string)
	for _, m := range members {
		if m.InvitedBy != nil {
			inviterNames[*m.InvitedBy] = ""
		}
	}
	if len(inviterNames) > 0 {
		ids := make([]uint, 0, len(inviterNames))
		for id := range inviterNames {
			ids = append(ids, id)
		}
		var inviters []models.Admin
		ctrl.Db.Where("id IN ?", ids).Find(&inviters)
		for _, inv := range inviters {
			inviterNames[inv.ID] = inv.Name
		}
	}

	entries := make([]MemberEntry, len(members))
	for i, m := range members {
		entry := MemberEntry{
			ID:        m.ID,
			AdminID:   m.AdminID,
			Name:      m.Name,
			Role:      m.Role,
			IsActive:  m.IsActive,
			CreatedAt: m.CreatedAt,
		}
		if m.InvitedBy != nil {
			entry.InvitedByName = inviterNames[*m.InvitedBy]
		}
		entries[i] = entry
	}

	var organization *models.Organization
	if actor.OrganizationID != nil {
		var org models.Organization
		if err := ctrl.Db.First(&org, *actor.OrganizationID).Error; err == nil {
			organization = &org
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team fetched successfully.", fiber.Map{
		"members":         entries,
		"organization":    organization,
		"currentUserRole": actor.Role,
	})
}

// AddMember creates a team member in the actor's organization. Owners and
// admins may add members; only an owner may grant the admin role. The admin
// identifier is unique across all organizations.
func (ctrl *Controller) AddMember(c *fiber.Ctx) error {
	actor, err := ctrl.loadActor(c)
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedMember").(*validators.AddMemberRequest)

	if !canManageTeam(actor.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Insufficient permissions!", nil)
	}
	if reqData.Role == models.RoleAdmin && actor.Role != models.RoleOwner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only owners can create admin members!", nil)
	}

	if err := ctrl.Db.Where("admin_id = ?", reqData.AdminID).First(&models.Admin{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Admin ID already exists!", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctrl.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing member password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	member := models.Admin{
		AdminID:        reqData.AdminID,
		Name:           reqData.Name,
		Password:       string(hashed),
		OrganizationID: actor.OrganizationID,
		Role:           reqData.Role,
		InvitedBy:      &actor.ID,
		IsActive:       true,
	}
	if err := ctrl.Db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Admin ID already exists!", nil)
		}
		log.Printf("Error adding team member: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add team member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Team member added successfully.", fiber.Map{
		"member": member,
	})
}

// ToggleMember activates or deactivates a member of the actor's
// organization. Owner accounts can never be deactivated.
func (ctrl *Controller) ToggleMember(c *fiber.Ctx) error {
	actor, err := ctrl.loadActor(c)
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedToggle").(*validators.ToggleMemberRequest)

	if !canManageTeam(actor.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Insufficient permissions!", nil)
	}

	if actor.OrganizationID == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	var target models.Admin
	if err := ctrl.Db.Where("id = ? AND organization_id = ?", reqData.MemberID, *actor.OrganizationID).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	if target.Role == models.RoleOwner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot deactivate owner!", nil)
	}

	target.IsActive = *reqData.IsActive
	if err := ctrl.Db.Model(&target).Update("is_active", target.IsActive).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update member status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member status updated.", fiber.Map{
		"member": target,
	})
}
