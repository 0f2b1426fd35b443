// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package token_test

import (
	"testing"

	"github.com/mendi-finance/launch/core/events"
	"github.com/mendi-finance/launch/core/token/mocks"
	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/num"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectTransferEvent(t *testing.T, broker *mocks.MockBroker, from, to types.Address, amount *num.Uint) {
	t.Helper()
	broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		e, ok := evt.(*events.Transfer)
		require.True(t, ok, "Event should be a Transfer, but is %T", evt)
		assert.Equal(t, from, e.From)
		assert.Equal(t, to, e.To)
		assert.Equal(t, amount.String(), e.Amount.String())
	})
}
