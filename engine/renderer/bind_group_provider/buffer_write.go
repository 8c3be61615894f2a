package bind_group_provider

// BufferWrite describes a single write of a program's uniform block into the uniform buffer of a
// BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Offset   uint64
	Data     []byte
}
