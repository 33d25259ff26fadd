package dialog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
	"tg-invest-bot/internal/usecase/portfolio"
	"tg-invest-bot/internal/usecase/router"
)

type stubPortfolioRepo struct {
	items []domain.PortfolioItem
}

func (r *stubPortfolioRepo) AddItem(userID int64, item domain.PortfolioItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *stubPortfolioRepo) RemoveBySymbol(userID int64, symbol string) (int64, error) {
	var kept []domain.PortfolioItem
	var removed int64
	for _, item := range r.items {
		if item.Symbol == symbol {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return removed, nil
}

func (r *stubPortfolioRepo) ListItems(userID int64) ([]domain.PortfolioItem, error) {
	return r.items, nil
}

func (r *stubPortfolioRepo) ReplaceBySource(userID int64, source string, items []domain.PortfolioItem) error {
	return nil
}

type stubLinkRepo struct{}

func (stubLinkRepo) AddLink(link domain.LinkedAccount) (domain.LinkedAccount, error) {
	return link, nil
}
func (stubLinkRepo) GetLink(userID, linkID int64) (domain.LinkedAccount, error) {
	return domain.LinkedAccount{}, domain.ErrNotFound
}
func (stubLinkRepo) ListLinks(userID int64) ([]domain.LinkedAccount, error) { return nil, nil }
func (stubLinkRepo) RemoveLink(userID, linkID int64) (bool, error)          { return false, nil }

type stubAlerts struct {
	created []domain.Alert
}

func (a *stubAlerts) Create(alert domain.Alert) (domain.Alert, error) {
	alert.ID = int64(len(a.created) + 1)
	a.created = append(a.created, alert)
	return alert, nil
}

func (a *stubAlerts) ListActive(userID int64) ([]domain.Alert, error) {
	return a.created, nil
}

type stubToggles struct {
	state map[string]bool
}

func (t *stubToggles) Toggle(feature string) (bool, error) {
	if t.state == nil {
		t.state = map[string]bool{}
	}
	t.state[feature] = !t.state[feature]
	return t.state[feature], nil
}

func (t *stubToggles) IsEnabled(feature string) (bool, error) {
	return t.state[feature], nil
}

type stubUsers struct {
	badges map[string]domain.Badge
}

func (u *stubUsers) UpsertByPlatformID(profile domain.PlatformProfile) (domain.User, error) {
	return domain.User{}, nil
}
func (u *stubUsers) GetByPlatformID(platform, platformUserID string) (domain.User, error) {
	return domain.User{}, domain.ErrNotFound
}
func (u *stubUsers) UpdateLanguage(userID int64, language string) error { return nil }
func (u *stubUsers) UpdateTier(userID int64, tier domain.Tier) error    { return nil }
func (u *stubUsers) UpdateBadge(platform, platformUserID string, badge domain.Badge) (bool, error) {
	if u.badges == nil {
		u.badges = map[string]domain.Badge{}
	}
	u.badges[platformUserID] = badge
	return true, nil
}
func (u *stubUsers) ListPlatformUserIDs(platform string) ([]string, error) { return nil, nil }
func (u *stubUsers) CountByTier() (map[domain.Tier]int, error)             { return nil, nil }

type stubQueue struct {
	jobs []domain.BroadcastJob
}

func (q *stubQueue) Enqueue(ctx context.Context, job domain.BroadcastJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *stubQueue) Receive(ctx context.Context) (domain.BroadcastJob, domain.BroadcastAckFunc, error) {
	return domain.BroadcastJob{}, nil, context.Canceled
}

type fixture struct {
	service *Service
	repo    *stubPortfolioRepo
	alerts  *stubAlerts
	users   *stubUsers
	queue   *stubQueue
	toggles *stubToggles
}

func newFixture() *fixture {
	repo := &stubPortfolioRepo{}
	alerts := &stubAlerts{}
	users := &stubUsers{}
	queue := &stubQueue{}
	toggles := &stubToggles{}

	portfolioService := portfolio.NewService(portfolio.Deps{
		Log:   zerolog.Nop(),
		Repo:  repo,
		Links: stubLinkRepo{},
	})
	routerService := router.NewService(router.Deps{Log: zerolog.Nop()})

	return &fixture{
		service: NewService(Deps{
			Log:       zerolog.Nop(),
			Router:    routerService,
			Portfolio: portfolioService,
			Users:     users,
			Alerts:    alerts,
			Toggles:   toggles,
			Broadcast: queue,
		}),
		repo:    repo,
		alerts:  alerts,
		users:   users,
		queue:   queue,
		toggles: toggles,
	}
}

func testUser() domain.User {
	return domain.User{ID: 1, Platform: "telegram", PlatformUserID: "100", Language: "en", Tier: domain.TierFree}
}

func adminUser() domain.User {
	u := testUser()
	u.IsAdmin = true
	u.Tier = domain.TierElite
	return u
}

func TestConsumePortfolioAddWithKnownType(t *testing.T) {
	f := newFixture()
	msg := f.service.Consume(context.Background(), testUser(), router.InputPortfolioAddDetails+":stock", "aapl 2 150")
	want := i18n.TF("en", "msg.asset_added", map[string]string{"symbol": "AAPL"})
	if msg.Text != want {
		t.Fatalf("текст %q, ожидалось %q", msg.Text, want)
	}
	if len(f.repo.items) != 1 {
		t.Fatalf("ожидалась одна позиция, получено %d", len(f.repo.items))
	}
	item := f.repo.items[0]
	if item.AssetType != "stock" || item.Symbol != "AAPL" || item.Amount != 2 || item.CostBasis != 150 {
		t.Fatalf("неожиданная позиция: %+v", item)
	}
}

func TestConsumePortfolioAddWithInlineType(t *testing.T) {
	f := newFixture()
	msg := f.service.Consume(context.Background(), testUser(), router.InputPortfolioAdd, "crypto btc 0.5")
	want := i18n.TF("en", "msg.asset_added", map[string]string{"symbol": "BTC"})
	if msg.Text != want {
		t.Fatalf("текст %q, ожидалось %q", msg.Text, want)
	}
	if f.repo.items[0].AssetType != "crypto" || f.repo.items[0].CostBasis != 0 {
		t.Fatalf("неожиданная позиция: %+v", f.repo.items[0])
	}
}

func TestConsumePortfolioAddInvalid(t *testing.T) {
	f := newFixture()
	cases := []string{"", "btc", "crypto btc zero", "crypto btc -1"}
	for _, text := range cases {
		msg := f.service.Consume(context.Background(), testUser(), router.InputPortfolioAdd, text)
		if msg.Text != i18n.T("en", "msg.asset_invalid") {
			t.Fatalf("ввод %q: текст %q, ожидалась ошибка формата", text, msg.Text)
		}
	}
	if len(f.repo.items) != 0 {
		t.Fatalf("позиции не должны были добавиться: %+v", f.repo.items)
	}
}

func TestConsumeCreateAlert(t *testing.T) {
	f := newFixture()
	msg := f.service.Consume(context.Background(), testUser(), router.InputAlertPrice, "crypto btc 50,000")
	if msg.Text != i18n.T("en", "msg.alert_price_created") {
		t.Fatalf("текст %q", msg.Text)
	}
	if len(f.alerts.created) != 1 {
		t.Fatalf("ожидался один алерт, получено %d", len(f.alerts.created))
	}
	alert := f.alerts.created[0]
	if alert.AssetType != "crypto" || alert.Symbol != "BTC" || alert.Condition != "price" || alert.TargetValue != 50000 {
		t.Fatalf("неожиданный алерт: %+v", alert)
	}
}

func TestConsumeCreateAlertInvalid(t *testing.T) {
	f := newFixture()
	cases := []string{"btc 100", "crypto btc abc", "crypto btc 0", "crypto btc 1 2"}
	for _, text := range cases {
		msg := f.service.Consume(context.Background(), testUser(), router.InputAlertPercent, text)
		if msg.Text != i18n.T("en", "msg.alert_percent_invalid") {
			t.Fatalf("ввод %q: текст %q, ожидалась ошибка формата", text, msg.Text)
		}
	}
	if len(f.alerts.created) != 0 {
		t.Fatalf("алерты не должны были создаться: %+v", f.alerts.created)
	}
}

func TestConsumeBroadcast(t *testing.T) {
	f := newFixture()

	msg := f.service.Consume(context.Background(), testUser(), router.InputAdminBroadcast, "hello")
	if msg.Text != i18n.T("en", "msg.admin_required") {
		t.Fatalf("не-админ: текст %q", msg.Text)
	}

	msg = f.service.Consume(context.Background(), adminUser(), router.InputAdminBroadcast, "hello everyone")
	if msg.Text != i18n.T("en", "msg.broadcast_queued") {
		t.Fatalf("админ: текст %q", msg.Text)
	}
	if len(f.queue.jobs) != 1 {
		t.Fatalf("ожидалась одна задача, получено %d", len(f.queue.jobs))
	}
	job := f.queue.jobs[0]
	if job.ID == "" || job.Platform != "telegram" || job.Text != "hello everyone" || job.RequestedBy != 1 {
		t.Fatalf("неожиданная задача: %+v", job)
	}
}

func TestConsumeAdminToggle(t *testing.T) {
	f := newFixture()
	msg := f.service.Consume(context.Background(), adminUser(), router.InputAdminToggle, "News_Project")
	want := i18n.TF("en", "msg.feature_toggled", map[string]string{"feature": "news_project → on"})
	if msg.Text != want {
		t.Fatalf("текст %q, ожидалось %q", msg.Text, want)
	}
	if !f.toggles.state["news_project"] {
		t.Fatal("флаг должен был включиться")
	}
}

func TestConsumeAdminVerify(t *testing.T) {
	f := newFixture()

	msg := f.service.Consume(context.Background(), adminUser(), router.InputAdminVerify, "555 hodl")
	want := i18n.TF("en", "msg.verify_done", map[string]string{"badge": "hodl"})
	if msg.Text != want {
		t.Fatalf("текст %q, ожидалось %q", msg.Text, want)
	}
	if f.users.badges["555"] != domain.BadgeHodl {
		t.Fatalf("бейдж не выставлен: %v", f.users.badges)
	}

	msg = f.service.Consume(context.Background(), adminUser(), router.InputAdminVerify, "555 king")
	if msg.Text != i18n.T("en", "msg.verify_invalid") {
		t.Fatalf("неизвестный бейдж: текст %q", msg.Text)
	}
}

func TestConsumeUnknownTag(t *testing.T) {
	f := newFixture()
	msg := f.service.Consume(context.Background(), testUser(), "mystery_tag", "text")
	if msg.Text != i18n.T("en", "msg.unknown_action") {
		t.Fatalf("текст %q", msg.Text)
	}
	if len(msg.Buttons) == 0 {
		t.Fatal("ответ должен содержать навигацию")
	}
}
