package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailInUse
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubPostRepo struct {
	posts      map[string]*domain.Post
	nextID     int
	viewCounts map[string]int64
	listErr    error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{
		posts:      make(map[string]*domain.Post),
		viewCounts: make(map[string]int64),
	}
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.Slug == post.Slug {
			return nil, domain.ErrSlugExists
		}
	}
	copy := clonePost(post)
	r.nextID++
	copy.ID = fmt.Sprintf("post-%d", r.nextID)
	r.posts[copy.ID] = clonePost(copy)
	return copy, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) FindBySlug(_ context.Context, slug string) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) List(_ context.Context, filter domain.PostFilter) ([]domain.Post, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []domain.Post
	for _, p := range r.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		if filter.CategorySlug != "" && p.CategoryID != filter.CategorySlug {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	total := int64(len(out))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(out) {
		return []domain.Post{}, total, nil
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) IncrementViews(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	r.viewCounts[id]++
	return nil
}

func (r *stubPostRepo) CountByStatus(_ context.Context, status domain.PostStatus) (int64, error) {
	var n int64
	for _, p := range r.posts {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range r.posts {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) CountByTag(_ context.Context, tagID string) (int64, error) {
	var n int64
	for _, p := range r.posts {
		for _, t := range p.TagIDs {
			if t == tagID {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *stubPostRepo) TotalViews(_ context.Context) (int64, error) {
	var n int64
	for _, v := range r.viewCounts {
		n += v
	}
	return n, nil
}

func (r *stubPostRepo) Recent(_ context.Context, limit int) ([]domain.Post, error) {
	out := make([]domain.Post, 0, limit)
	for _, p := range r.posts {
		if len(out) == limit {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	nextID     int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return nil, domain.ErrSlugExists
		}
	}
	clone := *c
	r.nextID++
	clone.ID = fmt.Sprintf("cat-%d", r.nextID)
	r.categories[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	if c, ok := r.categories[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

type stubTagRepo struct {
	tags   map[string]*domain.Tag
	nextID int
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{tags: make(map[string]*domain.Tag)}
}

func (r *stubTagRepo) Create(_ context.Context, t *domain.Tag) (*domain.Tag, error) {
	for _, existing := range r.tags {
		if existing.Slug == t.Slug {
			return nil, domain.ErrSlugExists
		}
	}
	clone := *t
	r.nextID++
	clone.ID = fmt.Sprintf("tag-%d", r.nextID)
	r.tags[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTagRepo) FindByID(_ context.Context, id string) (*domain.Tag, error) {
	if t, ok := r.tags[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTagNotFound
}

func (r *stubTagRepo) FindBySlug(_ context.Context, slug string) (*domain.Tag, error) {
	for _, t := range r.tags {
		if t.Slug == slug {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (r *stubTagRepo) List(_ context.Context) ([]domain.Tag, error) {
	out := make([]domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTagRepo) Update(_ context.Context, t *domain.Tag) error {
	if _, ok := r.tags[t.ID]; !ok {
		return domain.ErrTagNotFound
	}
	clone := *t
	r.tags[t.ID] = &clone
	return nil
}

func (r *stubTagRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tags[id]; !ok {
		return domain.ErrTagNotFound
	}
	delete(r.tags, id)
	return nil
}

type stubDeduper struct {
	seen     map[string]bool
	checkErr error
	markErr  error
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{seen: make(map[string]bool)}
}

func (d *stubDeduper) IsDuplicate(_ context.Context, postID, viewerHash string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[postID+":"+viewerHash], nil
}

func (d *stubDeduper) Mark(_ context.Context, postID, viewerHash string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[postID+":"+viewerHash] = true
	return nil
}

type stubSettingsRepo struct {
	saved   *domain.SiteSettings
	loads   int
	saveErr error
}

func (r *stubSettingsRepo) Load(_ context.Context) (*domain.SiteSettings, error) {
	r.loads++
	if r.saved == nil {
		return nil, nil
	}
	clone := *r.saved
	return &clone, nil
}

func (r *stubSettingsRepo) Save(_ context.Context, s *domain.SiteSettings) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *s
	r.saved = &clone
	return nil
}

type stubSettingsCache struct {
	cached      *domain.SiteSettings
	getErr      error
	invalidated int
}

func (c *stubSettingsCache) Get(_ context.Context) (*domain.SiteSettings, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.cached == nil {
		return nil, nil
	}
	clone := *c.cached
	return &clone, nil
}

func (c *stubSettingsCache) Set(_ context.Context, s *domain.SiteSettings) error {
	clone := *s
	c.cached = &clone
	return nil
}

func (c *stubSettingsCache) Invalidate(_ context.Context) error {
	c.cached = nil
	c.invalidated++
	return nil
}

type stubMediaRepo struct {
	media  map[string]*domain.Media
	nextID int
}

func newStubMediaRepo() *stubMediaRepo {
	return &stubMediaRepo{media: make(map[string]*domain.Media)}
}

func (r *stubMediaRepo) Create(_ context.Context, m *domain.Media) (*domain.Media, error) {
	clone := *m
	r.nextID++
	clone.ID = fmt.Sprintf("media-%d", r.nextID)
	r.media[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMediaRepo) FindByID(_ context.Context, id string) (*domain.Media, error) {
	if m, ok := r.media[id]; ok {
		clone := *m
		return &clone, nil
	}
	return nil, domain.ErrMediaNotFound
}

func (r *stubMediaRepo) FindByKey(_ context.Context, key string) (*domain.Media, error) {
	for _, m := range r.media {
		if m.Key == key {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrMediaNotFound
}

func (r *stubMediaRepo) List(_ context.Context, page, limit int, _ string) ([]domain.Media, int64, error) {
	out := make([]domain.Media, 0, len(r.media))
	for _, m := range r.media {
		out = append(out, *m)
	}
	return out, int64(len(r.media)), nil
}

func (r *stubMediaRepo) Update(_ context.Context, m *domain.Media) error {
	if _, ok := r.media[m.ID]; !ok {
		return domain.ErrMediaNotFound
	}
	clone := *m
	r.media[m.ID] = &clone
	return nil
}

func (r *stubMediaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.media[id]; !ok {
		return domain.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

func (r *stubMediaRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.media)), nil
}

type stubObjectStore struct {
	objects map[string][]byte
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{objects: make(map[string][]byte)}
}

func (s *stubObjectStore) Put(key string, r io.Reader, maxBytes int64) (int64, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return 0, err
	}
	if int64(len(data)) > maxBytes {
		return 0, domain.ErrObjectTooLarge
	}
	s.objects[key] = data
	return int64(len(data)), nil
}

func (s *stubObjectStore) Open(key string) (io.ReadCloser, int64, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, 0, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), int64(len(data)), nil
}

func (s *stubObjectStore) Exists(key string) bool {
	_, ok := s.objects[key]
	return ok
}

func (s *stubObjectStore) Delete(key string) error {
	delete(s.objects, key)
	return nil
}

type stubPresigner struct{}

func (stubPresigner) Sign(method, key string, expires time.Time) string {
	return fmt.Sprintf("sig-%s-%s-%d", method, key, expires.Unix())
}

func (p stubPresigner) Verify(method, key string, expires time.Time, signature string) error {
	if time.Now().After(expires) {
		return domain.ErrUploadExpired
	}
	if signature != p.Sign(method, key, expires) {
		return domain.ErrBadSignature
	}
	return nil
}

type stubAIToolRepo struct {
	tools  map[string]*domain.AITool
	nextID int
}

func newStubAIToolRepo() *stubAIToolRepo {
	return &stubAIToolRepo{tools: make(map[string]*domain.AITool)}
}

func (r *stubAIToolRepo) Create(_ context.Context, t *domain.AITool) (*domain.AITool, error) {
	for _, existing := range r.tools {
		if existing.Slug == t.Slug {
			return nil, domain.ErrSlugExists
		}
	}
	clone := *t
	r.nextID++
	clone.ID = fmt.Sprintf("tool-%d", r.nextID)
	r.tools[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAIToolRepo) FindByID(_ context.Context, id string) (*domain.AITool, error) {
	if t, ok := r.tools[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrToolNotFound
}

func (r *stubAIToolRepo) List(_ context.Context, page, limit int, activeOnly bool) ([]domain.AITool, int64, error) {
	var out []domain.AITool
	for _, t := range r.tools {
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubAIToolRepo) Update(_ context.Context, t *domain.AITool) error {
	if _, ok := r.tools[t.ID]; !ok {
		return domain.ErrToolNotFound
	}
	clone := *t
	r.tools[t.ID] = &clone
	return nil
}

func (r *stubAIToolRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tools[id]; !ok {
		return domain.ErrToolNotFound
	}
	delete(r.tools, id)
	return nil
}

func (r *stubAIToolRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tools)), nil
}
