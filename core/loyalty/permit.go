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

package loyalty

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/mendi-finance/launch/core/types"
	"github.com/mendi-finance/launch/libs/crypto"
	"github.com/mendi-finance/launch/libs/num"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var permitArguments = mustPermitArguments()

func mustPermitArguments() abi.Arguments {
	addressTy, err := abi.NewType("address", "", nil)
	if err != nil {
		panic(err)
	}
	uintTy, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: addressTy}, {Type: uintTy}}
}

// HashPermit returns keccak256(abi.encode(to, amount)), the digest a mint
// signer signs as a personal message.
func HashPermit(to types.Address, amount *num.Uint) (common.Hash, error) {
	packed, err := permitArguments.Pack(to, amount.BigInt())
	if err != nil {
		return common.Hash{}, fmt.Errorf("could not encode permit: %w", err)
	}
	return ethcrypto.Keccak256Hash(packed), nil
}

// SignPermit produces the signature MintWithPermit expects.
func SignPermit(key *ecdsa.PrivateKey, to types.Address, amount *num.Uint) ([]byte, error) {
	digest, err := HashPermit(to, amount)
	if err != nil {
		return nil, err
	}
	return crypto.SignDigest(key, digest)
}

func RecoverPermitSigner(digest common.Hash, signature []byte) (types.Address, error) {
	signer, err := crypto.RecoverSigner(digest, signature)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("%v: %w", err, ErrInvalidSignature)
	}
	return signer, nil
}
