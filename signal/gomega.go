package signal

// FailHandler raises a failure signal. It has the shape of a gomega fail
// handler, so gomega.NewGomega(signal.FailHandler) gives assertions whose
// failures end the example as failures rather than faults.
func FailHandler(message string, _ ...int) {
	Raise(Fail(message))
}
