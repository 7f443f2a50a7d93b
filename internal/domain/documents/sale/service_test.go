package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/audit"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/domain/registers/inventory"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// rollbackTx mimics a real transaction over the in-memory fakes: state
// mutated inside fn is restored when fn fails.
type rollbackTx struct {
	sales      *fakeSaleRepo
	inv        *fakeInventoryRepo
	ledgerRepo *fakeLedgerRepo
}

func (t *rollbackTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sales := make(map[id.ID]*Sale, len(t.sales.sales))
	for k, v := range t.sales.sales {
		cp := *v
		sales[k] = &cp
	}
	positions := make(map[id.ID]*inventory.Position, len(t.inv.positions))
	for k, v := range t.inv.positions {
		cp := *v
		positions[k] = &cp
	}
	accounts := make(map[string]ledger.Account, len(t.ledgerRepo.accounts))
	for k, v := range t.ledgerRepo.accounts {
		accounts[k] = v
	}
	entries := append([]ledger.Entry(nil), t.ledgerRepo.entries...)

	if err := fn(ctx); err != nil {
		t.sales.sales = sales
		t.inv.positions = positions
		t.ledgerRepo.accounts = accounts
		t.ledgerRepo.entries = entries
		return err
	}
	return nil
}

type fakeSaleRepo struct{ sales map[id.ID]*Sale }

func (f *fakeSaleRepo) Create(_ context.Context, s *Sale) error {
	cp := *s
	f.sales[s.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) GetByID(_ context.Context, saleID id.ID) (*Sale, error) {
	return f.sales[saleID], nil
}

func (f *fakeSaleRepo) List(_ context.Context) ([]Sale, error) {
	out := make([]Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, *s)
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

type fakeLedgerRepo struct {
	accounts   map[string]ledger.Account
	entries    []ledger.Entry
	failInsert error
}

func (f *fakeLedgerRepo) EnsureAccount(_ context.Context, name string, t ledger.AccountType) (id.ID, error) {
	key := name + "|" + string(t)
	if acc, ok := f.accounts[key]; ok {
		return acc.ID, nil
	}
	acc := ledger.Account{ID: id.New(), Name: name, Type: t}
	f.accounts[key] = acc
	return acc.ID, nil
}

func (f *fakeLedgerRepo) GetAccount(_ context.Context, name string, t ledger.AccountType) (*ledger.Account, error) {
	if acc, ok := f.accounts[name+"|"+string(t)]; ok {
		return &acc, nil
	}
	return nil, nil
}

func (f *fakeLedgerRepo) Insert(_ context.Context, e *ledger.Entry) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLedgerRepo) ListByAccount(_ context.Context, _ id.ID) ([]ledger.Entry, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) ListByReference(_ context.Context, _ ledger.ReferenceType, _ id.ID) ([]ledger.Entry, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) ListByDateRange(_ context.Context, _, _ time.Time) ([]ledger.Entry, error) {
	return nil, nil
}

type fakeRecorder struct{ events []string }

func (f *fakeRecorder) Record(_ context.Context, action audit.Action, entity string, _ id.ID, _ any) {
	f.events = append(f.events, string(action)+":"+entity)
}

type testEnv struct {
	svc        *Service
	clients    *fakeClientRepo
	models     *fakeModelRepo
	invRepo    *fakeInventoryRepo
	ledgerRepo *fakeLedgerRepo
	saleRepo   *fakeSaleRepo
	recorder   *fakeRecorder
}

func newTestEnv() *testEnv {
	conv := fx.MustNew(fx.DefaultRate)
	saleRepo := &fakeSaleRepo{sales: make(map[id.ID]*Sale)}
	clients := &fakeClientRepo{byID: make(map[id.ID]*client.Client)}
	models := &fakeModelRepo{byID: make(map[id.ID]*phonemodel.PhoneModel)}
	invRepo := &fakeInventoryRepo{positions: make(map[id.ID]*inventory.Position)}
	ledgerRepo := &fakeLedgerRepo{accounts: make(map[string]ledger.Account)}
	recorder := &fakeRecorder{}

	stock := inventory.NewService(invRepo, conv)
	books := ledger.NewService(ledgerRepo, passthroughTx{}, conv, clients, nil, models, stock, nil)
	txm := &rollbackTx{sales: saleRepo, inv: invRepo, ledgerRepo: ledgerRepo}
	svc := NewService(saleRepo, txm, clients, models, stock, books, recorder)

	return &testEnv{svc: svc, clients: clients, models: models, invRepo: invRepo, ledgerRepo: ledgerRepo, saleRepo: saleRepo, recorder: recorder}
}

func (env *testEnv) addModel(t *testing.T, name string, qty int64, avgCost string) id.ID {
	t.Helper()
	m := phonemodel.New(name)
	require.NoError(t, env.models.Create(context.Background(), m))
	env.invRepo.positions[m.ID] = &inventory.Position{
		ModelID:           m.ID,
		QuantityRemaining: qty,
		AvgCostAED:        types.MustMoney(avgCost),
	}
	return m.ID
}

func TestCreate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))
	modelID := env.addModel(t, "iPhone 13 128GB", 10, "377.25")

	doc, err := env.svc.Create(ctx, Input{
		ClientID: c.ID,
		Date:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Items: []ItemInput{
			{ModelID: modelID, Quantity: 4, UnitPriceAED: types.MustMoney("450")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.True(t, doc.TotalAED.Equal(types.MustMoney("1800")), "total = %s", doc.TotalAED)
	assert.Equal(t, PaymentCredit, doc.PaymentType)

	// Cost snapshot taken from the position at sale time.
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].UnitCostAED.Equal(types.MustMoney("377.25")))

	// Stock consumed.
	assert.Equal(t, int64(6), env.invRepo.positions[modelID].QuantityRemaining)

	// One credit on the client account for a regular sale.
	require.Len(t, env.ledgerRepo.entries, 1)
	e := env.ledgerRepo.entries[0]
	assert.True(t, e.CreditAED.Equal(types.MustMoney("1800")))
	assert.Equal(t, ledger.RefSale, e.ReferenceType)
	assert.Equal(t, doc.ID, e.ReferenceID)

	acc, err := env.ledgerRepo.GetAccount(ctx, "Ahmed Trading", ledger.AccountClient)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, acc.ID, e.AccountID)
}

func TestCreate_WalkinSettlesInCash(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Walk-in", client.TypeWalkin)
	require.NoError(t, env.clients.Create(ctx, c))
	modelID := env.addModel(t, "iPhone 13 128GB", 5, "377.25")

	doc, err := env.svc.Create(ctx, Input{
		ClientID: c.ID,
		Items: []ItemInput{
			{ModelID: modelID, Quantity: 2, UnitPriceAED: types.MustMoney("500")},
		},
		AmountReceivedAED: types.MustMoney("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentCash, doc.PaymentType)

	// Sale credit, cash credit, and the settling client debit.
	require.Len(t, env.ledgerRepo.entries, 3)

	saleEntry := env.ledgerRepo.entries[0]
	assert.True(t, saleEntry.CreditAED.Equal(types.MustMoney("1000")))
	assert.Equal(t, ledger.RefSale, saleEntry.ReferenceType)

	cashEntry := env.ledgerRepo.entries[1]
	assert.True(t, cashEntry.CreditAED.Equal(types.MustMoney("1000")))
	assert.Equal(t, ledger.RefSale, cashEntry.ReferenceType)
	cashAcc, _ := env.ledgerRepo.GetAccount(ctx, CashAccountName, ledger.AccountCash)
	require.NotNil(t, cashAcc)
	assert.Equal(t, cashAcc.ID, cashEntry.AccountID)

	settleEntry := env.ledgerRepo.entries[2]
	assert.True(t, settleEntry.DebitAED.Equal(types.MustMoney("1000")))
	assert.Equal(t, ledger.RefPayment, settleEntry.ReferenceType)
	assert.Equal(t, saleEntry.AccountID, settleEntry.AccountID)
	assert.Equal(t, doc.ID, settleEntry.ReferenceID)

	// Walk-in balance nets to zero: credit 1000 against debit 1000.
	net := saleEntry.CreditAED.Sub(settleEntry.DebitAED)
	assert.True(t, net.IsZero())
}

func TestCreate_RegularClientIgnoresCashLeg(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))
	modelID := env.addModel(t, "iPhone 13 128GB", 5, "377.25")

	_, err := env.svc.Create(ctx, Input{
		ClientID: c.ID,
		Items: []ItemInput{
			{ModelID: modelID, Quantity: 1, UnitPriceAED: types.MustMoney("500")},
		},
		AmountReceivedAED: types.MustMoney("500"),
	})
	require.NoError(t, err)

	// Credit sales ignore amount received: no cash movement, no debit.
	require.Len(t, env.ledgerRepo.entries, 1)
}

func TestCreate_DescriptionAppendedToEntry(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))
	modelID := env.addModel(t, "iPhone 13 128GB", 5, "377.25")

	_, err := env.svc.Create(ctx, Input{
		ClientID:    c.ID,
		Description: "March order",
		Items: []ItemInput{
			{ModelID: modelID, Quantity: 1, UnitPriceAED: types.MustMoney("450")},
		},
	})
	require.NoError(t, err)

	require.Len(t, env.ledgerRepo.entries, 1)
	assert.Equal(t, "Sale to Ahmed Trading - March order", env.ledgerRepo.entries[0].Description)
}

func TestCreate_LedgerFailureRollsBack(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))
	modelID := env.addModel(t, "iPhone 13 128GB", 5, "377.25")
	env.ledgerRepo.failInsert = errors.New("connection reset")

	_, err := env.svc.Create(ctx, Input{
		ClientID: c.ID,
		Items: []ItemInput{
			{ModelID: modelID, Quantity: 2, UnitPriceAED: types.MustMoney("450")},
		},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeTransaction, appErr.Code)

	// Nothing the transaction touched may stick: no sale, no entries, no
	// audit record, and the consumed units are back.
	assert.Empty(t, env.saleRepo.sales)
	assert.Empty(t, env.ledgerRepo.entries)
	assert.Empty(t, env.recorder.events)
	assert.Equal(t, int64(5), env.invRepo.positions[modelID].QuantityRemaining)
}

func TestCreate_InsufficientStock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))
	modelID := env.addModel(t, "iPhone 13 128GB", 3, "377.25")

	_, err := env.svc.Create(ctx, Input{
		ClientID: c.ID,
		Items: []ItemInput{
			{ModelID: modelID, Quantity: 5, UnitPriceAED: types.MustMoney("450")},
		},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Nothing persisted, nothing consumed.
	assert.Empty(t, env.ledgerRepo.entries)
	assert.Empty(t, env.saleRepo.sales)
	assert.Equal(t, int64(3), env.invRepo.positions[modelID].QuantityRemaining)
}

func TestCreate_DuplicateLinesAggregated(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))
	modelID := env.addModel(t, "iPhone 13 128GB", 5, "377.25")

	// 3 + 3 across two lines exceeds the 5 on hand even though each
	// line alone fits.
	_, err := env.svc.Create(ctx, Input{
		ClientID: c.ID,
		Items: []ItemInput{
			{ModelID: modelID, Quantity: 3, UnitPriceAED: types.MustMoney("450")},
			{ModelID: modelID, Quantity: 3, UnitPriceAED: types.MustMoney("440")},
		},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
}

func TestCreate_UnknownModel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	c := client.New("Ahmed Trading", client.TypeRegular)
	require.NoError(t, env.clients.Create(ctx, c))

	_, err := env.svc.Create(ctx, Input{
		ClientID: c.ID,
		Items: []ItemInput{
			{ModelID: id.New(), Quantity: 1, UnitPriceAED: types.MustMoney("450")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_UnknownClient(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Create(context.Background(), Input{
		ClientID: id.New(),
		Items: []ItemInput{
			{ModelID: id.New(), Quantity: 1, UnitPriceAED: types.MustMoney("450")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_EmptyItems(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Create(context.Background(), Input{ClientID: id.New()})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
