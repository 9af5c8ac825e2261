package integration

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"

	"github.com/google/uuid"
)

var errLedgerRejected = errors.New("ledger rejected submission")

// --- In-Memory Campaign Repo ---

type inMemoryCampaignRepo struct {
	mu        sync.RWMutex
	campaigns map[uuid.UUID]*domain.Campaign
	donations *inMemoryDonationRepo
}

func newInMemoryCampaignRepo(donations *inMemoryDonationRepo) *inMemoryCampaignRepo {
	return &inMemoryCampaignRepo{
		campaigns: make(map[uuid.UUID]*domain.Campaign),
		donations: donations,
	}
}

func (r *inMemoryCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.campaigns[c.ID] = &cp
	return nil
}

func (r *inMemoryCampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CampaignWithRaised, error) {
	r.mu.RLock()
	c, ok := r.campaigns[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	raised, err := r.donations.SumByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.CampaignWithRaised{Campaign: *c, Raised: raised}, nil
}

func (r *inMemoryCampaignRepo) List(ctx context.Context) ([]domain.CampaignWithRaised, error) {
	r.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.campaigns))
	for id := range r.campaigns {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	out := make([]domain.CampaignWithRaised, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *inMemoryCampaignRepo) ListByOwner(ctx context.Context, ownerWallet string) ([]domain.CampaignWithRaised, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CampaignWithRaised, 0)
	for _, c := range all {
		if c.OwnerWallet == ownerWallet {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- In-Memory Donation Repo ---

type inMemoryDonationRepo struct {
	mu        sync.RWMutex
	donations []*domain.Donation
	byTxRef   map[string]*domain.Donation
	titles    func(uuid.UUID) string
}

func newInMemoryDonationRepo() *inMemoryDonationRepo {
	return &inMemoryDonationRepo{byTxRef: make(map[string]*domain.Donation)}
}

func (r *inMemoryDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byTxRef[d.TxRef]; exists {
		return ports.ErrDuplicateTxRef
	}
	cp := *d
	r.donations = append(r.donations, &cp)
	r.byTxRef[d.TxRef] = &cp
	return nil
}

func (r *inMemoryDonationRepo) GetByTxRef(ctx context.Context, txRef string) (*domain.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byTxRef[txRef]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *inMemoryDonationRepo) ListByDonor(ctx context.Context, donorWallet string) ([]domain.DonationWithCampaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.DonationWithCampaign, 0)
	for _, d := range r.donations {
		if d.DonorWallet != donorWallet {
			continue
		}
		title := ""
		if r.titles != nil {
			title = r.titles(d.CampaignID)
		}
		out = append(out, domain.DonationWithCampaign{Donation: *d, CampaignTitle: title})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *inMemoryDonationRepo) SumByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for _, d := range r.donations {
		if d.CampaignID == campaignID {
			sum += d.Amount
		}
	}
	return sum, nil
}

// --- In-Memory Comment Repo ---

type inMemoryCommentRepo struct {
	mu       sync.RWMutex
	comments []*domain.Comment
}

func newInMemoryCommentRepo() *inMemoryCommentRepo {
	return &inMemoryCommentRepo{}
}

func (r *inMemoryCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *inMemoryCommentRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Comment, 0)
	for _, c := range r.comments {
		if c.CampaignID == campaignID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --- Fake Ledger Gateway ---

// fakeChain implements ports.ChainClient with programmable behavior.
type fakeChain struct {
	mu      sync.Mutex
	submits int
	fail    bool
	nextRef func(n int) string
}

func newFakeChain() *fakeChain {
	return &fakeChain{}
}

func (f *fakeChain) Submit(ctx context.Context, operation string, args []string, value int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	if f.fail {
		return "", errLedgerRejected
	}
	if f.nextRef != nil {
		return f.nextRef(f.submits), nil
	}
	return "0xref-" + uuid.New().String(), nil
}

func (f *fakeChain) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits
}
