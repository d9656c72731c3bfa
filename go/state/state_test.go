// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"context"
	"errors"
	"testing"

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"go.uber.org/mock/gomock"
)

func TestExecutionState_StorageIsFetchedOnceAndCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := tosca.NewMockNodeDataService(ctrl)
	ctx := context.Background()

	address := tosca.Address{1}
	key := tosca.Key{2}
	source.EXPECT().GetStorageAt(ctx, address, key).Return([]byte{0x12, 0x34}, nil).Times(1)

	s := New(source, nil)
	for i := 0; i < 3; i++ {
		value, err := s.GetStorage(ctx, address, key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := (tosca.Word{30: 0x12, 31: 0x34}); value != want {
			t.Errorf("unexpected value, wanted %v, got %v", want, value)
		}
	}
	if want, got := 1, s.NumFetches(); want != got {
		t.Errorf("unexpected number of fetches, wanted %d, got %d", want, got)
	}
}

func TestExecutionState_LocalStorageWritesTakePrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := tosca.NewMockNodeDataService(ctrl)

	s := New(source, nil)
	address := tosca.Address{1}
	key := tosca.Key{2}
	s.SetStorage(address, key, tosca.Word{31: 7})

	value, err := s.GetStorage(context.Background(), address, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (tosca.Word{31: 7}); value != want {
		t.Errorf("unexpected value, wanted %v, got %v", want, value)
	}
}

func TestExecutionState_AbsentRemoteSlotReadsAsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := tosca.NewMockNodeDataService(ctrl)
	source.EXPECT().GetStorageAt(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	s := New(source, nil)
	value, err := s.GetStorage(context.Background(), tosca.Address{1}, tosca.Key{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != (tosca.Word{}) {
		t.Errorf("expected zero word, got %v", value)
	}
}

func TestExecutionState_FetchFailuresAreReported(t *testing.T) {
	injected := errors.New("injected")
	tests := map[string]func(*fetchSetup) error{
		"storage": func(m *fetchSetup) error {
			m.source.EXPECT().GetStorageAt(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, injected)
			_, err := m.state.GetStorage(context.Background(), tosca.Address{}, tosca.Key{})
			return err
		},
		"balance": func(m *fetchSetup) error {
			m.source.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(tosca.Value{}, injected)
			_, err := m.state.GetBalance(context.Background(), tosca.Address{})
			return err
		},
		"code": func(m *fetchSetup) error {
			m.source.EXPECT().GetCode(gomock.Any(), gomock.Any()).Return(nil, injected)
			_, err := m.state.GetCode(context.Background(), tosca.Address{})
			return err
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := tosca.NewMockNodeDataService(ctrl)
			err := test(&fetchSetup{source: source, state: New(source, nil)})
			if !errors.Is(err, ErrRemoteFetchFailure) {
				t.Errorf("expected remote fetch failure, got %v", err)
			}
			if !errors.Is(err, injected) {
				t.Errorf("expected cause to be preserved, got %v", err)
			}
		})
	}
}

type fetchSetup struct {
	source *tosca.MockNodeDataService
	state  *ExecutionState
}

func TestExecutionState_NilSourceIsEmptyChain(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()
	if value, err := s.GetStorage(ctx, tosca.Address{1}, tosca.Key{1}); err != nil || value != (tosca.Word{}) {
		t.Errorf("unexpected storage, got %v, %v", value, err)
	}
	if value, err := s.GetBalance(ctx, tosca.Address{1}); err != nil || value != (tosca.Value{}) {
		t.Errorf("unexpected balance, got %v, %v", value, err)
	}
	if code, err := s.GetCode(ctx, tosca.Address{1}); err != nil || len(code) != 0 {
		t.Errorf("unexpected code, got %v, %v", code, err)
	}
}

func TestExecutionState_TransferMovesValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := tosca.NewMockNodeDataService(ctrl)
	ctx := context.Background()

	from, to := tosca.Address{1}, tosca.Address{2}
	source.EXPECT().GetBalance(ctx, from).Return(tosca.NewValue(100), nil).Times(1)
	source.EXPECT().GetBalance(ctx, to).Return(tosca.NewValue(5), nil).Times(1)

	s := New(source, nil)
	for i := 0; i < 2; i++ {
		ok, err := s.Transfer(ctx, from, to, tosca.NewValue(30))
		if err != nil || !ok {
			t.Fatalf("transfer failed: %t, %v", ok, err)
		}
	}

	tests := map[tosca.Address]tosca.Value{
		from: tosca.NewValue(40),
		to:   tosca.NewValue(65),
	}
	for address, want := range tests {
		got, err := s.GetBalance(ctx, address)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want != got {
			t.Errorf("unexpected balance of %v, wanted %v, got %v", address, want, got)
		}
	}
}

func TestExecutionState_TransferWithInsufficientBalanceIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := tosca.NewMockNodeDataService(ctrl)
	ctx := context.Background()

	from, to := tosca.Address{1}, tosca.Address{2}
	source.EXPECT().GetBalance(ctx, from).Return(tosca.NewValue(10), nil)

	s := New(source, nil)
	ok, err := s.Transfer(ctx, from, to, tosca.NewValue(11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("transfer should have been rejected")
	}
	if got, _ := s.GetBalance(ctx, from); got != tosca.NewValue(10) {
		t.Errorf("balance of sender modified, got %v", got)
	}
}

func TestExecutionState_RevertToSnapshotRestoresLocalWrites(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()
	address := tosca.Address{1}
	key := tosca.Key{1}

	s.SetStorage(address, key, tosca.Word{31: 1})
	s.SetBalance(address, tosca.NewValue(10))
	outer := s.Snapshot()

	s.SetStorage(address, key, tosca.Word{31: 2})
	s.SetStorage(address, tosca.Key{2}, tosca.Word{31: 3})
	s.SetBalance(address, tosca.NewValue(20))
	inner := s.Snapshot()
	s.SetBalance(address, tosca.NewValue(30))

	s.RevertToSnapshot(inner)
	if got, _ := s.GetBalance(ctx, address); got != tosca.NewValue(20) {
		t.Errorf("unexpected balance after inner revert, got %v", got)
	}

	s.RevertToSnapshot(outer)
	if got, _ := s.GetBalance(ctx, address); got != tosca.NewValue(10) {
		t.Errorf("unexpected balance after outer revert, got %v", got)
	}
	if got, _ := s.GetStorage(ctx, address, key); got != (tosca.Word{31: 1}) {
		t.Errorf("unexpected storage after outer revert, got %v", got)
	}
	if got := s.StorageWrites(address); len(got) != 1 {
		t.Errorf("unexpected storage writes after revert: %v", got)
	}
}

func TestExecutionState_DiscardSnapshotKeepsLocalWrites(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()
	address := tosca.Address{1}

	outer := s.Snapshot()
	s.Snapshot()
	s.SetBalance(address, tosca.NewValue(10))

	s.DiscardSnapshot(outer)
	if got := s.NumSnapshots(); got != 0 {
		t.Errorf("snapshots were not released, %d retained", got)
	}
	if got, _ := s.GetBalance(ctx, address); got != tosca.NewValue(10) {
		t.Errorf("unexpected balance after discarding snapshot, got %v", got)
	}
}

func TestExecutionState_StorageWritesAreSortedPerAccount(t *testing.T) {
	s := New(nil, nil)
	a, b := tosca.Address{1}, tosca.Address{2}
	s.SetStorage(a, tosca.Key{3}, tosca.Word{3})
	s.SetStorage(a, tosca.Key{1}, tosca.Word{1})
	s.SetStorage(b, tosca.Key{2}, tosca.Word{2})
	s.SetBalance(a, tosca.NewValue(1))

	got := s.StorageWrites(a)
	want := []Slot{{tosca.Key{1}, tosca.Word{1}}, {tosca.Key{3}, tosca.Word{3}}}
	if len(got) != len(want) {
		t.Fatalf("unexpected writes, wanted %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("unexpected write at %d, wanted %v, got %v", i, want[i], got[i])
		}
	}
}

func TestExecutionState_CodeAddressesAreSorted(t *testing.T) {
	s := New(nil, nil)
	s.SetCode(tosca.Address{3}, tosca.Code{1})
	s.SetCode(tosca.Address{1}, tosca.Code{2})
	s.SetCode(tosca.Address{2}, tosca.Code{3})

	got := s.CodeAddresses()
	want := []tosca.Address{{1}, {2}, {3}}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("unexpected address at %d, wanted %v, got %v", i, want[i], got[i])
		}
	}
}
