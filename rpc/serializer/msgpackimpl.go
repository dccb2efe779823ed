package serializer

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/queryd-io/queryd/rpc/common"
)

// NewMsgpackSerializer creates a new serializer using the msgpack format
// Msgpack offers compact payloads while staying schema-less like JSON
func NewMsgpackSerializer() IRPCSerializer {
	return &msgpackSerializerImpl{}
}

// msgpackSerializerImpl implements the IRPCSerializer interface using msgpack encoding
type msgpackSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (m msgpackSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	return msgpack.Marshal(msg)
}

func (m msgpackSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	return msgpack.Unmarshal(b, msg)
}
