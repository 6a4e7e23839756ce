package config

type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// Students returns the store key holding the serialized student roster
func (r *StoreKeyStruct) Students() string {
	return "students"
}

// Attendance returns the store key holding all attendance entries
func (r *StoreKeyStruct) Attendance() string {
	return "attendance"
}

// Grades returns the store key holding all grade entries
func (r *StoreKeyStruct) Grades() string {
	return "grades"
}

// Revision returns the store key whose value changes on every restore,
// signalling hosts to reload their state
func (r *StoreKeyStruct) Revision() string {
	return "revision"
}

var StoreKey = NewStoreKeyStruct()
