// ABOUTME: HTTP routes for memos, tags and account login.
// ABOUTME: Handlers decode requests, call the notebook and render JSON.

package api

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/harper/memopad/internal/auth"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/notebook"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Get("/health", s.healthHandler)

	authGroup := s.App.Group("/api/auth")
	authGroup.Post("/signup", s.signUp)
	authGroup.Post("/login", s.login)
	authGroup.Post("/sso", s.loginWithSSO)
	authGroup.Post("/logout", s.logout)

	apiGroup := s.App.Group("/api")
	if s.secret != nil {
		apiGroup.Use(jwtware.New(jwtware.Config{
			SigningKey: jwtware.SigningKey{Key: s.secret},
		}))
	}

	apiGroup.Get("/memos", s.listMemos)
	apiGroup.Post("/memos", s.createMemo)
	apiGroup.Get("/memos/:id", s.getMemo)
	apiGroup.Put("/memos/:id", s.updateMemo)
	apiGroup.Delete("/memos/:id", s.deleteMemo)

	apiGroup.Get("/tags", s.listTags)
	apiGroup.Post("/tags", s.addTag)
	apiGroup.Delete("/tags/:name", s.removeTag)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type group struct {
	Tag   string         `json:"tag"`
	Memos []*models.Memo `json:"memos"`
}

type listResponse struct {
	Groups      []group  `json:"groups"`
	TagNames    []string `json:"tagNames"`
	Suggestions []string `json:"suggestions,omitempty"`
	Total       int      `json:"total"`
}

func (s *FiberServer) listMemos(c *fiber.Ctx) error {
	v, err := s.nb.View(c.UserContext(), c.Query("q"), c.Query("tag"))
	if err != nil {
		return err
	}
	resp := listResponse{
		Groups:      make([]group, 0, len(v.Keys)),
		TagNames:    v.TagNames,
		Suggestions: v.Suggestions,
		Total:       v.Total,
	}
	for _, key := range v.Keys {
		resp.Groups = append(resp.Groups, group{Tag: key, Memos: v.Groups[key]})
	}
	return c.JSON(resp)
}

func (s *FiberServer) createMemo(c *fiber.Ctx) error {
	var d notebook.Draft
	if err := c.BodyParser(&d); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.nb.Create(c.UserContext(), d)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (s *FiberServer) getMemo(c *fiber.Ctx) error {
	id, err := memoID(c)
	if err != nil {
		return err
	}
	m, err := s.nb.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

func (s *FiberServer) updateMemo(c *fiber.Ctx) error {
	id, err := memoID(c)
	if err != nil {
		return err
	}
	var d notebook.Draft
	if err := c.BodyParser(&d); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.nb.Update(c.UserContext(), id, d)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

func (s *FiberServer) deleteMemo(c *fiber.Ctx) error {
	id, err := memoID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nb.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *FiberServer) listTags(c *fiber.Ctx) error {
	tags, err := s.nb.Tags(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tags": tags})
}

func (s *FiberServer) addTag(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.nb.AddTag(c.UserContext(), body.Name)
	if err != nil {
		return err
	}
	tags, err := s.nb.Tags(c.UserContext())
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"added": added, "tags": tags})
}

func (s *FiberServer) removeTag(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nb.RemoveTag(c.UserContext(), name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *FiberServer) signUp(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if s.identity == nil {
		return auth.ErrNoProvider
	}
	sess, err := s.identity.SignUp(c.UserContext(), in.Email, in.Password, in.Name)
	return s.sessionResponse(c, sess, err)
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if s.identity == nil {
		return auth.ErrNoProvider
	}
	sess, err := s.identity.Login(c.UserContext(), in.Email, in.Password)
	return s.sessionResponse(c, sess, err)
}

func (s *FiberServer) loginWithSSO(c *fiber.Ctx) error {
	if s.identity == nil {
		return auth.ErrNoProvider
	}
	sess, err := s.identity.LoginWithSSO(c.UserContext())
	return s.sessionResponse(c, sess, err)
}

func (s *FiberServer) logout(c *fiber.Ctx) error {
	if s.identity == nil {
		return auth.ErrNoProvider
	}
	if err := s.identity.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// sessionResponse renders a login result. Provider failures become 401 with
// the provider's message.
func (s *FiberServer) sessionResponse(c *fiber.Ctx, sess *auth.Session, err error) error {
	if errors.Is(err, auth.ErrNoProvider) {
		return err
	}
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	resp := fiber.Map{
		"session": fiber.Map{
			"id":     sess.ID,
			"method": sess.Method,
			"userId": sess.UserID,
			"email":  sess.Email,
			"name":   sess.Name,
		},
	}
	if s.secret != nil {
		token, err := s.signToken(sess)
		if err != nil {
			return err
		}
		resp["token"] = token
	}
	return c.JSON(resp)
}

func (s *FiberServer) signToken(sess *auth.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub": sess.UserID,
		"sid": sess.ID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func memoID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid memo id")
	}
	return id, nil
}
