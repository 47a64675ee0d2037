package sqlstore

import (
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/catalyst-wireless/activation/core"
)

// RepositoryFactory wires every sql-backed store off one bun handle.
type RepositoryFactory struct {
	db *bun.DB

	inventoryStore   *InventoryStore
	accountStore     *AccountStore
	planStore        *PlanStore
	carrierListStore *CarrierListStore
	esimStore        *ESimStore
	historyStore     *HistoryStore
	procGateway      *ProcGateway
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) error {
	if f == nil {
		return fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return err
		}
		f.db = db
	}
	if f.inventoryStore != nil {
		return nil
	}
	return f.initStores()
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) InventoryCatalog() core.InventoryCatalog {
	if f == nil {
		return nil
	}
	return f.inventoryStore
}

func (f *RepositoryFactory) CarrierAccountReader() core.CarrierAccountReader {
	if f == nil {
		return nil
	}
	return f.accountStore
}

func (f *RepositoryFactory) BusinessPlanReader() core.BusinessPlanReader {
	if f == nil {
		return nil
	}
	return f.planStore
}

func (f *RepositoryFactory) BearerPathReader() core.BearerPathReader {
	if f == nil {
		return nil
	}
	return f.planStore
}

func (f *RepositoryFactory) CarrierListReader() core.CarrierListReader {
	if f == nil {
		return nil
	}
	return f.carrierListStore
}

func (f *RepositoryFactory) InventoryAllocator() core.InventoryAllocator {
	if f == nil {
		return nil
	}
	return f.esimStore
}

func (f *RepositoryFactory) CarrierGateway() core.CarrierGateway {
	if f == nil {
		return nil
	}
	return f.procGateway
}

func (f *RepositoryFactory) HistoryStore() *HistoryStore {
	if f == nil {
		return nil
	}
	return f.historyStore
}

func (f *RepositoryFactory) initStores() error {
	inventoryStore, err := NewInventoryStore(f.db)
	if err != nil {
		return err
	}
	f.inventoryStore = inventoryStore

	accountStore, err := NewAccountStore(f.db)
	if err != nil {
		return err
	}
	f.accountStore = accountStore

	planStore, err := NewPlanStore(f.db)
	if err != nil {
		return err
	}
	f.planStore = planStore

	carrierListStore, err := NewCarrierListStore(f.db)
	if err != nil {
		return err
	}
	f.carrierListStore = carrierListStore

	esimStore, err := NewESimStore(f.db)
	if err != nil {
		return err
	}
	f.esimStore = esimStore

	transactionRepo := repository.NewRepository[*activationTransactionRecord](f.db, transactionHandlers())
	if validator, ok := transactionRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid transaction repository wiring: %w", err)
		}
	}
	lineRepo := repository.NewRepository[*activationLineRecord](f.db, transactionLineHandlers())
	if validator, ok := lineRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid transaction line repository wiring: %w", err)
		}
	}
	f.historyStore = &HistoryStore{
		db:    f.db,
		repo:  transactionRepo,
		lines: lineRepo,
	}

	procGateway, err := NewProcGateway(f.db)
	if err != nil {
		return err
	}
	f.procGateway = procGateway

	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
