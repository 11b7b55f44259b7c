package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/points"
	"github.com/Dias221467/FF_Points/pkg/sanitize"
	"github.com/Dias221467/FF_Points/pkg/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampInput is the admin form for a new camp.
type CampInput struct {
	Name    string   `json:"name" validate:"notblank,max=120"`
	Mentors []string `json:"mentors" validate:"dive,len=24,hexadecimal"`
}

// KidInput is the admin form for enrolling a kid.
type KidInput struct {
	Nickname    string `json:"nickname" validate:"notblank,max=40"`
	FirstName   string `json:"first_name" validate:"notblank,max=80"`
	LastName    string `json:"last_name" validate:"notblank,max=80"`
	GroupNumber int    `json:"group_number" validate:"min=1"`
}

// GroupAward is the outcome of a whole-group award.
type GroupAward struct {
	Group int `json:"group"`
	Delta int `json:"delta"`
	points.BulkResult
}

// CampService manages camps and the points of enrolled kids. Kid balances
// live on CampKid records and never touch User.Points.
type CampService struct {
	camps   CampStore
	kids    CampKidStore
	users   UserStore
	mutator *points.Mutator
}

func NewCampService(camps CampStore, kids CampKidStore, users UserStore, mutator *points.Mutator) *CampService {
	return &CampService{camps: camps, kids: kids, users: users, mutator: mutator}
}

// CreateCamp creates a camp and flags every listed mentor.
func (s *CampService) CreateCamp(ctx context.Context, actor *models.User, in CampInput) (*models.Camp, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	in.Name = sanitize.Text(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, validationErr(err)
	}

	mentors := make([]primitive.ObjectID, 0, len(in.Mentors))
	for _, hex := range in.Mentors {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, validationErr(fmt.Errorf("invalid mentor ID %q", hex))
		}
		if _, err := s.users.GetUserByID(ctx, id); err != nil {
			return nil, storeErr("load mentor", err)
		}
		mentors = append(mentors, id)
	}

	camp, err := s.camps.CreateCamp(ctx, &models.Camp{
		Name:      in.Name,
		Mentors:   mentors,
		CreatedBy: actor.ID,
	})
	if err != nil {
		return nil, storeErr("create camp", err)
	}

	for _, id := range mentors {
		if err := s.users.SetCampMentor(ctx, id, camp.ID); err != nil {
			return nil, storeErr("flag camp mentor", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"campID":  camp.ID.Hex(),
		"mentors": len(mentors),
	}).Info("Camp created")
	return camp, nil
}

// ListCamps returns all camps. Admin only.
func (s *CampService) ListCamps(ctx context.Context, actor *models.User) ([]models.Camp, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	camps, err := s.camps.ListCamps(ctx)
	if err != nil {
		return nil, storeErr("list camps", err)
	}
	return camps, nil
}

// GetCamp returns a camp the actor may manage.
func (s *CampService) GetCamp(ctx context.Context, actor *models.User, campID string) (*models.Camp, error) {
	return s.authorize(ctx, actor, campID)
}

// MentorCamp returns the camp the actor mentors, or ErrNotFound.
func (s *CampService) MentorCamp(ctx context.Context, actor *models.User) (*models.Camp, error) {
	if actor == nil || !actor.CampMentor || actor.CampID == nil {
		return nil, fmt.Errorf("mentored camp: %w", ErrNotFound)
	}
	camp, err := s.camps.GetCampByID(ctx, *actor.CampID)
	if err != nil {
		return nil, storeErr("load camp", err)
	}
	return camp, nil
}

// AddKid enrolls a kid in a camp with zero points. Admin only.
func (s *CampService) AddKid(ctx context.Context, actor *models.User, campID string, in KidInput) (*models.CampKid, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	camp, err := s.authorize(ctx, actor, campID)
	if err != nil {
		return nil, err
	}

	in.Nickname = sanitize.Text(in.Nickname)
	in.FirstName = sanitize.Text(in.FirstName)
	in.LastName = sanitize.Text(in.LastName)
	if err := validation.Struct(in); err != nil {
		return nil, validationErr(err)
	}

	kid, err := s.kids.CreateKid(ctx, &models.CampKid{
		CampID:      camp.ID,
		Nickname:    in.Nickname,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		GroupNumber: in.GroupNumber,
	})
	if err != nil {
		return nil, storeErr("add kid", err)
	}

	logrus.WithFields(logrus.Fields{
		"campID": camp.ID.Hex(),
		"kidID":  kid.ID.Hex(),
		"group":  kid.GroupNumber,
	}).Info("Kid added to camp")
	return kid, nil
}

// ListKids returns a camp's kids ranked by points and refreshes the kid
// cache from the same read.
func (s *CampService) ListKids(ctx context.Context, actor *models.User, campID string) ([]models.CampKid, error) {
	camp, err := s.authorize(ctx, actor, campID)
	if err != nil {
		return nil, err
	}
	kids, err := s.kids.ListByCamp(ctx, camp.ID)
	if err != nil {
		return nil, storeErr("list kids", err)
	}

	sort.SliceStable(kids, func(i, j int) bool { return kids[i].Points > kids[j].Points })

	balances := make(map[string]int, len(kids))
	for _, k := range kids {
		balances[k.ID.Hex()] = k.Points
	}
	s.mutator.Cache().Load(balances)
	return kids, nil
}

// Groups returns the distinct group numbers of a camp in ascending order.
func (s *CampService) Groups(ctx context.Context, actor *models.User, campID string) ([]int, error) {
	camp, err := s.authorize(ctx, actor, campID)
	if err != nil {
		return nil, err
	}
	kids, err := s.kids.ListByCamp(ctx, camp.ID)
	if err != nil {
		return nil, storeErr("list kids", err)
	}

	seen := make(map[int]bool)
	groups := []int{}
	for _, k := range kids {
		if !seen[k.GroupNumber] {
			seen[k.GroupNumber] = true
			groups = append(groups, k.GroupNumber)
		}
	}
	sort.Ints(groups)
	return groups, nil
}

// AdjustKidPoints applies delta to a single kid of the camp.
func (s *CampService) AdjustKidPoints(ctx context.Context, actor *models.User, campID, kidID string, delta int) (*points.Change, error) {
	camp, err := s.authorize(ctx, actor, campID)
	if err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(kidID)
	if err != nil {
		return nil, validationErr(fmt.Errorf("invalid kid ID %q", kidID))
	}

	kid, err := s.kids.GetKidByID(ctx, objID)
	if err != nil {
		return nil, storeErr("load kid", err)
	}
	if kid.CampID != camp.ID {
		return nil, fmt.Errorf("kid %s in camp %s: %w", kidID, campID, ErrNotFound)
	}

	change, err := s.mutator.Apply(ctx, kid.ID, delta)
	if err != nil {
		return nil, storeErr("apply kid points", err)
	}

	logrus.WithFields(logrus.Fields{
		"campID":  camp.ID.Hex(),
		"kidID":   kid.ID.Hex(),
		"delta":   delta,
		"balance": change.Points,
		"actorID": actor.ID.Hex(),
	}).Info("Kid points adjusted")
	return &change, nil
}

// AwardGroup applies delta to every kid in a group, one by one. Members that
// failed are listed in the result; earlier successes are not undone.
func (s *CampService) AwardGroup(ctx context.Context, actor *models.User, campID string, group, delta int) (*GroupAward, error) {
	camp, err := s.authorize(ctx, actor, campID)
	if err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, validationErr(fmt.Errorf("delta must not be zero"))
	}
	if group < 1 {
		return nil, validationErr(fmt.Errorf("group must be at least 1"))
	}

	kids, err := s.kids.ListByGroup(ctx, camp.ID, group)
	if err != nil {
		return nil, storeErr("list group", err)
	}
	if len(kids) == 0 {
		return nil, fmt.Errorf("group %d: %w", group, ErrNotFound)
	}

	ids := make([]primitive.ObjectID, 0, len(kids))
	for _, k := range kids {
		ids = append(ids, k.ID)
	}
	res := s.mutator.ApplyBulk(ctx, ids, delta)
	if len(res.Failed) > 0 {
		logrus.WithError(res.Err()).WithFields(logrus.Fields{
			"campID": camp.ID.Hex(),
			"group":  group,
		}).Warn("Group award partially applied")
	}

	return &GroupAward{Group: group, Delta: delta, BulkResult: res}, nil
}

// authorize loads the camp and checks that the actor is an admin or the
// camp's flagged mentor. The check runs on every call.
func (s *CampService) authorize(ctx context.Context, actor *models.User, campID string) (*models.Camp, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	objID, err := primitive.ObjectIDFromHex(campID)
	if err != nil {
		return nil, validationErr(fmt.Errorf("invalid camp ID %q", campID))
	}
	if !actor.IsAdmin() && !actor.MentorsCamp(objID) {
		logrus.WithFields(logrus.Fields{
			"userID": actor.ID.Hex(),
			"campID": campID,
		}).Warn("Camp access denied")
		return nil, fmt.Errorf("camp %s: %w", campID, ErrForbidden)
	}

	camp, err := s.camps.GetCampByID(ctx, objID)
	if err != nil {
		return nil, storeErr("load camp", err)
	}
	return camp, nil
}

// ParseGroup converts a path segment into a group number.
func ParseGroup(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, validationErr(fmt.Errorf("invalid group %q", s))
	}
	return n, nil
}
