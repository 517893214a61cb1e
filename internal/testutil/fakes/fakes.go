// Package fakes implementaciones en memoria de los puertos de dominio y aplicación para tests.
// Cada fake permite inyectar fallos por método con FailOn.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// failures errores programados por nombre de método.
type failures struct {
	mu    sync.Mutex
	errs  map[string]error
	calls map[string]int
}

// FailOn hace que el método indicado devuelva err hasta que se llame Clear.
func (f *failures) FailOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs == nil {
		f.errs = map[string]error{}
	}
	f.errs[method] = err
}

// Clear elimina los fallos programados.
func (f *failures) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = nil
}

// Calls cantidad de llamadas al método.
func (f *failures) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *failures) hit(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[method]++
	return f.errs[method]
}

// ─── Companies ────────────────────────────────────────────────────────────────

// Companies repositorio de empresas en memoria.
type Companies struct {
	failures
	mu    sync.Mutex
	rows  map[string]entity.Company
	Plans *Plans // opcional: resuelve PlanName en las lecturas
}

var _ repository.CompanyRepository = (*Companies)(nil)

// NewCompanies crea el repositorio vacío.
func NewCompanies() *Companies { return &Companies{rows: map[string]entity.Company{}} }

// Put inserta o reemplaza una fila sin pasar por Create.
func (r *Companies) Put(c entity.Company) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.ID] = c
}

// Len cantidad de filas.
func (r *Companies) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *Companies) withPlan(c entity.Company) *entity.Company {
	if r.Plans != nil && c.PlanID != nil {
		if p, _ := r.Plans.GetByID(context.Background(), *c.PlanID); p != nil {
			c.PlanName = p.Name
		}
	}
	return &c
}

func (r *Companies) Create(_ context.Context, c *entity.Company) error {
	if err := r.hit("Create"); err != nil {
		return err
	}
	r.Put(*c)
	return nil
}

func (r *Companies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if err := r.hit("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	c, ok := r.rows[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.withPlan(c), nil
}

func (r *Companies) Update(_ context.Context, c *entity.Company) error {
	if err := r.hit("Update"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.CNPJ, cur.Email, cur.PlanID, cur.UpdatedAt = c.Name, c.CNPJ, c.Email, c.PlanID, c.UpdatedAt
	r.rows[c.ID] = cur
	return nil
}

func (r *Companies) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	if err := r.hit("UpdateStatus"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status, cur.UpdatedAt = status, at
	r.rows[id] = cur
	return nil
}

func (r *Companies) List(_ context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	if err := r.hit("List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	var out []entity.Company
	for _, c := range r.rows {
		if f.Status == "" || c.Status == f.Status {
			out = append(out, c)
		}
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	res := make([]*entity.Company, 0, len(out))
	for _, c := range out {
		res = append(res, r.withPlan(c))
	}
	return res, nil
}

func (r *Companies) Delete(_ context.Context, id string) error {
	if err := r.hit("Delete"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *Companies) Count(_ context.Context) (int, error) {
	if err := r.hit("Count"); err != nil {
		return 0, err
	}
	return r.Len(), nil
}

func (r *Companies) CountByStatus(_ context.Context, status string) (int, error) {
	if err := r.hit("CountByStatus"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.rows {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *Companies) ListOnTrial(_ context.Context) ([]*entity.Company, error) {
	if err := r.hit("ListOnTrial"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.rows {
		c := c
		if c.OnTrial() {
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *Companies) MarkTrialExpired(_ context.Context, id string, at time.Time) (bool, error) {
	if err := r.hit("MarkTrialExpired"); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok || !c.OnTrial() {
		return false, nil
	}
	expired := entity.PlanTierExpired
	c.PlanTier, c.UpdatedAt = &expired, at
	r.rows[id] = c
	return true, nil
}

// ─── Plans ────────────────────────────────────────────────────────────────────

// Plans repositorio de planes en memoria.
type Plans struct {
	failures
	mu   sync.Mutex
	rows map[string]entity.Plan
}

var _ repository.PlanRepository = (*Plans)(nil)

// NewPlans crea el repositorio con las filas dadas.
func NewPlans(plans ...entity.Plan) *Plans {
	r := &Plans{rows: map[string]entity.Plan{}}
	for _, p := range plans {
		r.rows[p.ID] = p
	}
	return r
}

func (r *Plans) Create(_ context.Context, p *entity.Plan) error {
	if err := r.hit("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = *p
	return nil
}

func (r *Plans) GetByID(_ context.Context, id string) (*entity.Plan, error) {
	if err := r.hit("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *Plans) Update(_ context.Context, p *entity.Plan) error {
	if err := r.hit("Update"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[p.ID] = *p
	return nil
}

func (r *Plans) Delete(_ context.Context, id string) error {
	if err := r.hit("Delete"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *Plans) List(_ context.Context) ([]*entity.Plan, error) {
	if err := r.hit("List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Plan, 0, len(r.rows))
	for _, p := range r.rows {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Plans) Count(_ context.Context) (int, error) {
	if err := r.hit("Count"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), nil
}

// ─── Users ────────────────────────────────────────────────────────────────────

// Users repositorio de usuarios en memoria.
type Users struct {
	failures
	mu        sync.Mutex
	rows      map[string]entity.User
	Companies *Companies // opcional: resuelve audiencias en ListRecipients
}

var _ repository.UserRepository = (*Users)(nil)

// NewUsers crea el repositorio con las filas dadas.
func NewUsers(users ...entity.User) *Users {
	r := &Users{rows: map[string]entity.User{}}
	for _, u := range users {
		r.rows[u.ID] = u
	}
	return r
}

// Len cantidad de filas.
func (r *Users) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	if err := r.hit("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.rows {
		if strings.EqualFold(cur.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.rows[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	if err := r.hit("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := r.hit("GetByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	if err := r.hit("Delete"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *Users) ListByClassification(_ context.Context, classification string) ([]*entity.User, error) {
	if err := r.hit("ListByClassification"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.rows {
		u := u
		if u.Classification == classification {
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Users) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	if err := r.hit("SetActive"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active, u.UpdatedAt = active, at
	r.rows[id] = u
	return nil
}

func (r *Users) CountActive(_ context.Context) (int, error) {
	if err := r.hit("CountActive"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.rows {
		if u.Active {
			n++
		}
	}
	return n, nil
}

func (r *Users) ListRecipients(ctx context.Context, audience string) ([]*entity.User, error) {
	if err := r.hit("ListRecipients"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	users := make([]entity.User, 0, len(r.rows))
	for _, u := range r.rows {
		users = append(users, u)
	}
	r.mu.Unlock()

	var out []*entity.User
	for _, u := range users {
		u := u
		if !u.Active || u.Classification != entity.ClassificationCustomer || u.TenantID == nil || r.Companies == nil {
			continue
		}
		c, _ := r.Companies.GetByID(ctx, *u.TenantID)
		if c == nil {
			continue
		}
		if MatchesAudience(c, audience) {
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// MatchesAudience misma regla que la consulta SQL de destinatarios.
func MatchesAudience(c *entity.Company, audience string) bool {
	switch audience {
	case entity.AudienceAll:
		return c.Status != entity.CompanyStatusInactive
	case entity.AudienceTrial:
		return c.Status == entity.CompanyStatusTrial || c.OnTrial()
	case entity.AudienceActive:
		return c.Status == entity.CompanyStatusActive
	}
	return false
}

// ─── Access requests ─────────────────────────────────────────────────────────

// AccessRequests repositorio de solicitudes en memoria.
type AccessRequests struct {
	failures
	mu   sync.Mutex
	rows map[string]entity.AccessRequest
}

var _ repository.AccessRequestRepository = (*AccessRequests)(nil)

// NewAccessRequests crea el repositorio con las filas dadas.
func NewAccessRequests(reqs ...entity.AccessRequest) *AccessRequests {
	r := &AccessRequests{rows: map[string]entity.AccessRequest{}}
	for _, q := range reqs {
		r.rows[q.ID] = q
	}
	return r
}

// Status estado actual de la solicitud.
func (r *AccessRequests) Status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].Status
}

func (r *AccessRequests) Create(_ context.Context, q *entity.AccessRequest) error {
	if err := r.hit("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[q.ID] = *q
	return nil
}

func (r *AccessRequests) GetByID(_ context.Context, id string) (*entity.AccessRequest, error) {
	if err := r.hit("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *AccessRequests) Update(_ context.Context, q *entity.AccessRequest) (bool, error) {
	if err := r.hit("Update"); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[q.ID]
	if !ok || cur.Status != entity.AccessRequestPending {
		return false, nil
	}
	q.Status = cur.Status
	r.rows[q.ID] = *q
	return true, nil
}

func (r *AccessRequests) List(_ context.Context) ([]*entity.AccessRequest, error) {
	if err := r.hit("List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.AccessRequest, 0, len(r.rows))
	for _, q := range r.rows {
		q := q
		out = append(out, &q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AccessRequests) TransitionStatus(_ context.Context, id, from, to string, at time.Time) (bool, error) {
	if err := r.hit("TransitionStatus"); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.rows[id]
	if !ok || q.Status != from {
		return false, nil
	}
	q.Status, q.UpdatedAt = to, at
	r.rows[id] = q
	return true, nil
}

// ─── Notifications ───────────────────────────────────────────────────────────

// Notifications repositorio de notificaciones en memoria.
type Notifications struct {
	failures
	mu   sync.Mutex
	rows map[string]entity.Notification
}

var _ repository.NotificationRepository = (*Notifications)(nil)

// NewNotifications crea el repositorio con las filas dadas.
func NewNotifications(ns ...entity.Notification) *Notifications {
	r := &Notifications{rows: map[string]entity.Notification{}}
	for _, n := range ns {
		r.rows[n.ID] = n
	}
	return r
}

// Get lectura directa para asserts.
func (r *Notifications) Get(id string) entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}

func (r *Notifications) Create(_ context.Context, n *entity.Notification) error {
	if err := r.hit("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[n.ID] = *n
	return nil
}

func (r *Notifications) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	if err := r.hit("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *Notifications) List(_ context.Context) ([]*entity.Notification, error) {
	if err := r.hit("List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Notification, 0, len(r.rows))
	for _, n := range r.rows {
		n := n
		out = append(out, &n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SendAt.After(out[j].SendAt) })
	return out, nil
}

func (r *Notifications) ListDue(_ context.Context, now time.Time) ([]*entity.Notification, error) {
	if err := r.hit("ListDue"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.rows {
		n := n
		if n.IsDue(now) {
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SendAt.Before(out[j].SendAt) })
	return out, nil
}

func (r *Notifications) Claim(_ context.Context, id string) (bool, error) {
	if err := r.hit("Claim"); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.Status != entity.NotificationPending {
		return false, nil
	}
	n.Status = entity.NotificationSending
	r.rows[id] = n
	return true, nil
}

func (r *Notifications) MarkSent(_ context.Context, id string, at time.Time) (bool, error) {
	if err := r.hit("MarkSent"); err != nil {
		return false, err
	}
	return r.mark(id, entity.NotificationSent, "", at), nil
}

func (r *Notifications) MarkFailed(_ context.Context, id, reason string, at time.Time) (bool, error) {
	if err := r.hit("MarkFailed"); err != nil {
		return false, err
	}
	return r.mark(id, entity.NotificationFailed, reason, at), nil
}

func (r *Notifications) mark(id, status, reason string, at time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.Status != entity.NotificationSending {
		return false
	}
	n.Status, n.Error = status, reason
	if status == entity.NotificationSent {
		n.SentAt = &at
	} else {
		n.FailedAt = &at
	}
	r.rows[id] = n
	return true
}

// ─── Tenders ──────────────────────────────────────────────────────────────────

// Tenders repositorio de editais en memoria.
type Tenders struct {
	failures
	mu   sync.Mutex
	rows map[string]entity.Tender
}

var _ repository.TenderRepository = (*Tenders)(nil)

// NewTenders crea el repositorio con las filas dadas.
func NewTenders(ts ...entity.Tender) *Tenders {
	r := &Tenders{rows: map[string]entity.Tender{}}
	for _, t := range ts {
		r.rows[t.ID] = t
	}
	return r
}

func (r *Tenders) Create(_ context.Context, t *entity.Tender) error {
	if err := r.hit("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[t.ID] = *t
	return nil
}

func (r *Tenders) GetByID(_ context.Context, tenantID, id string) (*entity.Tender, error) {
	if err := r.hit("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok || t.TenantID != tenantID {
		return nil, nil
	}
	return &t, nil
}

func (r *Tenders) Update(_ context.Context, t *entity.Tender) error {
	if err := r.hit("Update"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[t.ID]
	if !ok || cur.TenantID != t.TenantID {
		return domain.ErrNotFound
	}
	r.rows[t.ID] = *t
	return nil
}

func (r *Tenders) List(_ context.Context, tenantID string) ([]*entity.Tender, error) {
	if err := r.hit("List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Tender
	for _, t := range r.rows {
		t := t
		if t.TenantID == tenantID {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DisputeAt.Equal(out[j].DisputeAt) {
			return out[i].DisputeAt.Before(out[j].DisputeAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Tenders) Summary(_ context.Context, tenantID string, now time.Time) (*entity.TenderSummary, error) {
	if err := r.hit("Summary"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &entity.TenderSummary{}
	y, m, d := now.Date()
	for _, t := range r.rows {
		if t.TenantID != tenantID {
			continue
		}
		switch t.Status {
		case entity.TenderInProgress:
			s.InProgress++
			ty, tm, td := t.DisputeAt.In(now.Location()).Date()
			if ty == y && tm == m && td == d {
				s.DisputesToday++
			}
			if !t.ProposalDeadline.Before(now) && t.ProposalDeadline.Before(now.AddDate(0, 0, 7)) {
				s.DeadlinesThisWeek++
			}
		case entity.TenderFinished:
			s.Finished++
		}
	}
	return s, nil
}

// ─── Identity ─────────────────────────────────────────────────────────────────

// Identity proveedor de identidad en memoria. Las contraseñas se guardan en claro (solo tests).
type Identity struct {
	failures
	mu        sync.Mutex
	byEmail   map[string]entity.Principal
	passwords map[string]string
	seq       int
}

var _ ports.IdentityProvider = (*Identity)(nil)

// NewIdentity crea el proveedor vacío.
func NewIdentity() *Identity {
	return &Identity{byEmail: map[string]entity.Principal{}, passwords: map[string]string{}}
}

// Add registra un principal con ID fijo.
func (p *Identity) Add(id, email, password string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := strings.ToLower(email)
	p.byEmail[key] = entity.Principal{ID: id, Email: email, EmailConfirmed: true}
	p.passwords[key] = password
}

// Len cantidad de principals.
func (p *Identity) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byEmail)
}

// Password contraseña registrada para email.
func (p *Identity) Password(email string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passwords[strings.ToLower(email)]
}

func (p *Identity) SignIn(_ context.Context, email, password string) (*entity.Principal, error) {
	if err := p.hit("SignIn"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := strings.ToLower(email)
	pr, ok := p.byEmail[key]
	if !ok || p.passwords[key] != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &pr, nil
}

func (p *Identity) CreatePrincipal(_ context.Context, in entity.NewPrincipal) (*entity.Principal, error) {
	if err := p.hit("CreatePrincipal"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := strings.ToLower(in.Email)
	if _, ok := p.byEmail[key]; ok {
		return nil, domain.ErrEmailAlreadyExists
	}
	p.seq++
	pr := entity.Principal{
		ID:             fmt.Sprintf("principal-%d", p.seq),
		Email:          in.Email,
		EmailConfirmed: in.EmailConfirmed,
		Metadata:       in.Metadata,
		CreatedAt:      time.Now(),
	}
	p.byEmail[key] = pr
	p.passwords[key] = in.Password
	return &pr, nil
}

func (p *Identity) DeletePrincipal(_ context.Context, pr *entity.Principal) error {
	if err := p.hit("DeletePrincipal"); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := strings.ToLower(pr.Email)
	delete(p.byEmail, key)
	delete(p.passwords, key)
	return nil
}

// ─── Mailer ───────────────────────────────────────────────────────────────────

// Mailer registra los correos enviados.
type Mailer struct {
	failures
	mu   sync.Mutex
	sent []ports.EmailMessage
}

var _ ports.Mailer = (*Mailer)(nil)

func (m *Mailer) Send(_ context.Context, msg ports.EmailMessage) error {
	if err := m.hit("Send"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent copia de los correos enviados.
func (m *Mailer) Sent() []ports.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.EmailMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// ─── Reports ──────────────────────────────────────────────────────────────────

// Reports generador de reportes que devuelve un PDF mínimo y registra lo recibido.
type Reports struct {
	failures
	mu        sync.Mutex
	Title     string
	Companies []*entity.Company
	Company   *entity.Company
	Tenders   []*entity.Tender
}

var _ ports.ReportGenerator = (*Reports)(nil)

func (r *Reports) CompaniesReport(_ context.Context, title string, companies []*entity.Company) ([]byte, error) {
	if err := r.hit("CompaniesReport"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Title, r.Companies = title, companies
	return []byte("%PDF-1.4"), nil
}

func (r *Reports) TendersReport(_ context.Context, company *entity.Company, tenders []*entity.Tender) ([]byte, error) {
	if err := r.hit("TendersReport"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Company, r.Tenders = company, tenders
	return []byte("%PDF-1.4"), nil
}
