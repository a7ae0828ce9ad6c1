package handlers_test

import (
	"context"
	"fmt"
	"sync"

	"ast-fleet-console-api-server/internal/store"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// memStore is an in-memory store.Store used by the handler tests. It
// round-trips items through attributevalue so the dynamodbav tags get
// exercised the same way the real adapter exercises them.
type memStore struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
	// hash key attribute per table, mirroring the bootstrap mapping
	keyFields map[string]string
}

func newMemStore(keyFields map[string]string) *memStore {
	return &memStore{
		tables:    make(map[string]map[string]map[string]types.AttributeValue),
		keyFields: keyFields,
	}
}

func keyValue(key store.Key) string {
	for _, v := range key {
		return v
	}
	return ""
}

func (m *memStore) items(table string) map[string]map[string]types.AttributeValue {
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]map[string]types.AttributeValue)
	}
	return m.tables[table]
}

func (m *memStore) Get(ctx context.Context, table string, key store.Key, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items(table)[keyValue(key)]
	if !ok {
		return store.ErrNotFound
	}
	return attributevalue.UnmarshalMap(item, out)
}

func (m *memStore) Put(ctx context.Context, table string, item any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	keyField := m.keyFields[table]
	keyAttr, ok := av[keyField].(*types.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("item for %s has no string key %q", table, keyField)
	}
	m.items(table)[keyAttr.Value] = av
	return nil
}

func (m *memStore) Update(ctx context.Context, table string, key store.Key, changes map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items(table)[keyValue(key)]
	if !ok {
		return fmt.Errorf("update of missing item in %s", table)
	}
	for field, value := range changes {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		item[field] = av
	}
	return nil
}

func (m *memStore) Delete(ctx context.Context, table string, key store.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items(table), keyValue(key))
	return nil
}

func (m *memStore) Scan(ctx context.Context, table string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]map[string]types.AttributeValue, 0, len(m.items(table)))
	for _, item := range m.items(table) {
		list = append(list, item)
	}
	return attributevalue.UnmarshalListOfMaps(list, out)
}
