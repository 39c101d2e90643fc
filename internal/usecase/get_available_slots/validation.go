package get_available_slots

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BranchID <= 0 || req.Date.IsZero() {
		return ErrInvalidInput
	}
	return nil
}
