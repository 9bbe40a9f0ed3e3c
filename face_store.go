package bspmesh

// FaceStore is an ordered polygon list. The builder partitions into three of
// them at every level.
type FaceStore struct {
	faces []Ngon
}

func NewFaceStore() *FaceStore {
	return &FaceStore{faces: make([]Ngon, 0, 10)}
}

func (fs *FaceStore) AddFace(f Ngon) {
	fs.faces = append(fs.faces, f)
}

func (fs *FaceStore) FaceCount() int {
	return len(fs.faces)
}

func (fs *FaceStore) Faces() []Ngon {
	return fs.faces
}
