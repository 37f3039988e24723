package calendar

type BlockSlotRequest struct {
	SlotDate string `json:"slot_date" binding:"required,slotdate"`
	SlotTime string `json:"slot_time" binding:"required,slottime"`
	Note     string `json:"note" binding:"max=500"`
}

type UnblockSlotRequest struct {
	SlotDate string `json:"slot_date" binding:"required,slotdate"`
	SlotTime string `json:"slot_time" binding:"required,slottime"`
}
