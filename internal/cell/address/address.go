// Package address encodes and decodes CKB addresses.
package address

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
)

// Payload format tags.
const (
	FormatFull     byte = 0x00
	FormatShort    byte = 0x01
	FormatFullData byte = 0x02
	FormatFullType byte = 0x04
)

const (
	shortArgsLength    = 20
	minFullPayloadSize = 1 + model.HashSize + 1
)

type shortCode struct {
	mainnet string
	testnet string
}

var shortCodes = map[byte]shortCode{
	// secp256k1/blake160
	0x00: {
		mainnet: "0x9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8",
		testnet: "0x9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8",
	},
	// secp256k1/multisig
	0x01: {
		mainnet: "0x5c5069eb0857efc65e1bca0c07df34c31663b3622fd3876c876320fc9634e2a8",
		testnet: "0x5c5069eb0857efc65e1bca0c07df34c31663b3622fd3876c876320fc9634e2a8",
	},
	// anyone-can-pay
	0x02: {
		mainnet: "0xd369597ff47f29fbc0d47d2e3775370d1250b85140c670e4718af712983a2354",
		testnet: "0x3419a1c09eb2567f6552ee7a8ecffd64155cffe0f1796e6e61ec088d740c1356",
	},
}

// Address is a decoded CKB address.
type Address struct {
	Network model.Network
	Script  model.Script
}

// Encode renders the lock script as a full-format bech32m address.
func Encode(network model.Network, script model.Script) (string, error) {
	hrp, err := network.AddressPrefix()
	if err != nil {
		return "", err
	}
	ht, err := script.HashType.Byte()
	if err != nil {
		return "", err
	}
	payload := make([]byte, 0, minFullPayloadSize+len(script.Args))
	payload = append(payload, FormatFull)
	payload = append(payload, script.CodeHash[:]...)
	payload = append(payload, ht)
	payload = append(payload, script.Args...)

	conv, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	return bech32.EncodeM(hrp, conv)
}

// Parse decodes full, deprecated full and short addresses.
func Parse(addr string) (*Address, error) {
	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return nil, invalid(err.Error())
	}
	network, err := networkFromPrefix(hrp)
	if err != nil {
		return nil, err
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, invalid(err.Error())
	}
	if len(payload) == 0 {
		return nil, invalid("empty payload")
	}

	isBech32m, err := usesBech32m(addr, hrp, data)
	if err != nil {
		return nil, err
	}

	format := payload[0]
	if (format == FormatFull) != isBech32m {
		return nil, invalid(fmt.Sprintf("format 0x%02x uses the wrong checksum variant", format))
	}

	var script model.Script
	switch format {
	case FormatFull:
		if len(payload) < minFullPayloadSize {
			return nil, invalid("full payload too short")
		}
		copy(script.CodeHash[:], payload[1:1+model.HashSize])
		ht, err := model.HashTypeFromByte(payload[1+model.HashSize])
		if err != nil {
			return nil, err
		}
		script.HashType = ht
		script.Args = append([]byte{}, payload[minFullPayloadSize:]...)
	case FormatFullData, FormatFullType:
		if len(payload) < 1+model.HashSize {
			return nil, invalid("deprecated full payload too short")
		}
		copy(script.CodeHash[:], payload[1:1+model.HashSize])
		script.HashType = model.HashTypeData
		if format == FormatFullType {
			script.HashType = model.HashTypeType
		}
		script.Args = append([]byte{}, payload[1+model.HashSize:]...)
	case FormatShort:
		if len(payload) != 2+shortArgsLength {
			return nil, invalid("short payload must carry 20 bytes of args")
		}
		code, ok := shortCodes[payload[1]]
		if !ok {
			return nil, invalid(fmt.Sprintf("unknown short code index 0x%02x", payload[1]))
		}
		codeHash := code.mainnet
		if network == model.Testnet {
			codeHash = code.testnet
		}
		h, err := model.ParseHash(codeHash)
		if err != nil {
			return nil, err
		}
		script.CodeHash = h
		script.HashType = model.HashTypeType
		script.Args = append([]byte{}, payload[2:]...)
	default:
		return nil, invalid(fmt.Sprintf("unknown format 0x%02x", format))
	}

	return &Address{Network: network, Script: script}, nil
}

func usesBech32m(addr, hrp string, data []byte) (bool, error) {
	reencoded, err := bech32.EncodeM(hrp, data)
	if err != nil {
		return false, invalid(err.Error())
	}
	return reencoded == strings.ToLower(addr), nil
}

func networkFromPrefix(hrp string) (model.Network, error) {
	switch hrp {
	case "ckb":
		return model.Mainnet, nil
	case "ckt":
		return model.Testnet, nil
	default:
		return "", invalid(fmt.Sprintf("unknown prefix %q", hrp))
	}
}

func invalid(reason string) error {
	return &model.ValidationError{Field: "address", Reason: reason}
}
