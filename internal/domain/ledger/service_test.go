package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/supplier"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
	"github.com/Iqbalshah786/inventory/internal/domain/registers/inventory"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLedgerRepo struct {
	accounts map[string]Account
	entries  []Entry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{accounts: make(map[string]Account)}
}

func accountKey(name string, t AccountType) string { return name + "|" + string(t) }

func (f *fakeLedgerRepo) EnsureAccount(_ context.Context, name string, t AccountType) (id.ID, error) {
	key := accountKey(name, t)
	if acc, ok := f.accounts[key]; ok {
		return acc.ID, nil
	}
	acc := Account{ID: id.New(), Name: name, Type: t, CreatedAt: time.Now()}
	f.accounts[key] = acc
	return acc.ID, nil
}

func (f *fakeLedgerRepo) GetAccount(_ context.Context, name string, t AccountType) (*Account, error) {
	if acc, ok := f.accounts[accountKey(name, t)]; ok {
		return &acc, nil
	}
	return nil, nil
}

func (f *fakeLedgerRepo) Insert(_ context.Context, e *Entry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLedgerRepo) ListByAccount(_ context.Context, accountID id.ID) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListByReference(_ context.Context, refType ReferenceType, refID id.ID) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if e.ReferenceType == refType && e.ReferenceID == refID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeClientRepo struct{ byID map[id.ID]*client.Client }

func (f *fakeClientRepo) Create(_ context.Context, c *client.Client) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, clientID id.ID) (*client.Client, error) {
	return f.byID[clientID], nil
}

func (f *fakeClientRepo) List(_ context.Context) ([]client.Client, error) { return nil, nil }

type fakeSupplierRepo struct{ byID map[id.ID]*supplier.Supplier }

func (f *fakeSupplierRepo) Create(_ context.Context, s *supplier.Supplier) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSupplierRepo) GetByID(_ context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	return f.byID[supplierID], nil
}

func (f *fakeSupplierRepo) List(_ context.Context) ([]supplier.Supplier, error) { return nil, nil }

type fakeModelRepo struct{ byID map[id.ID]*phonemodel.PhoneModel }

func (f *fakeModelRepo) Create(_ context.Context, m *phonemodel.PhoneModel) error {
	f.byID[m.ID] = m
	return nil
}

func (f *fakeModelRepo) GetByID(_ context.Context, modelID id.ID) (*phonemodel.PhoneModel, error) {
	return f.byID[modelID], nil
}

func (f *fakeModelRepo) GetByIDs(_ context.Context, modelIDs []id.ID) (map[id.ID]phonemodel.PhoneModel, error) {
	out := make(map[id.ID]phonemodel.PhoneModel)
	for _, mid := range modelIDs {
		if m, ok := f.byID[mid]; ok {
			out[mid] = *m
		}
	}
	return out, nil
}

func (f *fakeModelRepo) List(_ context.Context) ([]phonemodel.PhoneModel, error) { return nil, nil }

type fakeInventoryRepo struct{ positions map[id.ID]*inventory.Position }

func (f *fakeInventoryRepo) Get(_ context.Context, modelID id.ID) (*inventory.Position, error) {
	if p, ok := f.positions[modelID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeInventoryRepo) GetForUpdate(ctx context.Context, modelID id.ID) (*inventory.Position, error) {
	return f.Get(ctx, modelID)
}

func (f *fakeInventoryRepo) Save(_ context.Context, p *inventory.Position) error {
	cp := *p
	f.positions[p.ModelID] = &cp
	return nil
}

func (f *fakeInventoryRepo) Consume(_ context.Context, modelID id.ID, qty int64) (bool, error) {
	p, ok := f.positions[modelID]
	if !ok || p.QuantityRemaining < qty {
		return false, nil
	}
	p.QuantityRemaining -= qty
	return true, nil
}

func (f *fakeInventoryRepo) List(_ context.Context) ([]inventory.Position, error) { return nil, nil }

type testEnv struct {
	svc       *Service
	repo      *fakeLedgerRepo
	clients   *fakeClientRepo
	suppliers *fakeSupplierRepo
	models    *fakeModelRepo
	invRepo   *fakeInventoryRepo
}

func newTestEnv() *testEnv {
	conv := fx.MustNew(fx.DefaultRate)
	repo := newFakeLedgerRepo()
	clients := &fakeClientRepo{byID: make(map[id.ID]*client.Client)}
	suppliers := &fakeSupplierRepo{byID: make(map[id.ID]*supplier.Supplier)}
	models := &fakeModelRepo{byID: make(map[id.ID]*phonemodel.PhoneModel)}
	invRepo := &fakeInventoryRepo{positions: make(map[id.ID]*inventory.Position)}
	stock := inventory.NewService(invRepo, conv)

	svc := NewService(repo, passthroughTx{}, conv, clients, suppliers, models, stock, nil)
	return &testEnv{svc: svc, repo: repo, clients: clients, suppliers: suppliers, models: models, invRepo: invRepo}
}

func TestRecordReceived(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))

	entryID, err := env.svc.RecordReceived(ctx, ReceivedInput{
		ClientID:  c.ID,
		AmountAED: types.MustMoney("500"),
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.False(t, id.IsNil(entryID))

	require.Len(t, env.repo.entries, 1)
	e := env.repo.entries[0]
	assert.Equal(t, "Payment received from Ahmed Trading", e.Description)
	assert.True(t, e.DebitAED.Equal(types.MustMoney("500")))
	assert.True(t, e.CreditAED.IsZero())
	assert.Equal(t, RefReceived, e.ReferenceType)
	assert.Equal(t, c.ID, e.ReferenceID)

	acc, err := env.repo.GetAccount(ctx, "Ahmed Trading", AccountClient)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, acc.ID, e.AccountID)
}

func TestRecordReceived_UnknownClient(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.RecordReceived(context.Background(), ReceivedInput{
		ClientID:  id.New(),
		AmountAED: types.MustMoney("500"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, env.repo.entries)
}

func TestRecordReceived_NonPositiveAmount(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.RecordReceived(context.Background(), ReceivedInput{
		ClientID:  id.New(),
		AmountAED: types.Zero(),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRecordPaid_ComputesUSD(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sup := supplier.New("HK Wholesale")
	require.NoError(t, env.suppliers.Create(ctx, sup))

	_, err := env.svc.RecordPaid(ctx, PaidInput{
		SupplierID: sup.ID,
		AmountAED:  types.MustMoney("3672.50"),
	})
	require.NoError(t, err)

	require.Len(t, env.repo.entries, 1)
	e := env.repo.entries[0]
	assert.Equal(t, "Payment paid to HK Wholesale", e.Description)
	assert.True(t, e.DebitAED.Equal(types.MustMoney("3672.50")))
	assert.True(t, e.DebitUSD.Equal(types.MustMoney("1000")), "usd = %s", e.DebitUSD)
	assert.Equal(t, RefPaid, e.ReferenceType)
}

func TestRecordPaid_KeepsGivenUSD(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sup := supplier.New("HK Wholesale")
	require.NoError(t, env.suppliers.Create(ctx, sup))

	_, err := env.svc.RecordPaid(ctx, PaidInput{
		SupplierID: sup.ID,
		AmountAED:  types.MustMoney("3700"),
		AmountUSD:  types.MustMoney("1000"),
	})
	require.NoError(t, err)

	require.Len(t, env.repo.entries, 1)
	assert.True(t, env.repo.entries[0].DebitUSD.Equal(types.MustMoney("1000")))
}

func TestAddExpense(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	m := phonemodel.New("iPhone 13 128GB")
	require.NoError(t, env.models.Create(ctx, m))
	env.invRepo.positions[m.ID] = &inventory.Position{
		ModelID:           m.ID,
		QuantityRemaining: 10,
		AvgCostAED:        types.MustMoney("100"),
	}

	_, err := env.svc.AddExpense(ctx, ExpenseInput{
		ModelID:   m.ID,
		AmountAED: types.MustMoney("50"),
	})
	require.NoError(t, err)

	// Ledger side: credit on the shared expenses account.
	require.Len(t, env.repo.entries, 1)
	e := env.repo.entries[0]
	assert.True(t, e.CreditAED.Equal(types.MustMoney("50")))
	assert.True(t, e.DebitAED.IsZero())
	assert.Equal(t, RefExpense, e.ReferenceType)
	assert.Equal(t, m.ID, e.ReferenceID)
	assert.Equal(t, "Expense for iPhone 13 128GB", e.Description)

	acc, err := env.repo.GetAccount(ctx, ExpensesAccountName, AccountExpense)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, acc.ID, e.AccountID)

	// Register side: average absorbed the cost.
	pos := env.invRepo.positions[m.ID]
	assert.True(t, pos.AvgCostAED.Equal(types.MustMoney("105")),
		"avg = %s, want 105", pos.AvgCostAED)
}

func TestAddExpense_NoInventory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	m := phonemodel.New("iPhone 13 128GB")
	require.NoError(t, env.models.Create(ctx, m))

	_, err := env.svc.AddExpense(ctx, ExpenseInput{
		ModelID:   m.ID,
		AmountAED: types.MustMoney("50"),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNoInventory, appErr.Code)
	assert.Empty(t, env.repo.entries)
}

func TestEntryValidate(t *testing.T) {
	ctx := context.Background()
	accountID := id.New()

	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{
			name: "debit only",
			entry: Entry{
				AccountID:     accountID,
				DebitAED:      types.MustMoney("10"),
				ReferenceType: RefReceived,
			},
		},
		{
			name: "credit only",
			entry: Entry{
				AccountID:     accountID,
				CreditAED:     types.MustMoney("10"),
				ReferenceType: RefSale,
			},
		},
		{
			name: "both sides",
			entry: Entry{
				AccountID:     accountID,
				DebitAED:      types.MustMoney("10"),
				CreditAED:     types.MustMoney("10"),
				ReferenceType: RefSale,
			},
			wantErr: true,
		},
		{
			name: "neither side",
			entry: Entry{
				AccountID:     accountID,
				ReferenceType: RefSale,
			},
			wantErr: true,
		},
		{
			name: "missing account",
			entry: Entry{
				DebitAED:      types.MustMoney("10"),
				ReferenceType: RefReceived,
			},
			wantErr: true,
		},
		{
			name: "missing reference type",
			entry: Entry{
				AccountID: accountID,
				DebitAED:  types.MustMoney("10"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate(ctx)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
