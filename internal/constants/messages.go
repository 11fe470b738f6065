package constants

const (
	MsgBalanceRetrieved       = "points balance retrieved successfully"
	MsgTransactionsRetrieved  = "points transactions retrieved successfully"
	MsgBalanceAdjusted        = "points balance adjusted successfully"
	MsgChargeRequestCreated   = "charge request submitted successfully"
	MsgWithdrawRequestCreated = "withdraw request submitted successfully"
	MsgRequestDecided         = "request decided successfully"
	MsgRequestsRetrieved      = "requests retrieved successfully"
	MsgOrderCreated           = "order request created successfully"
	MsgOrderRetrieved         = "order request retrieved successfully"
	MsgOrdersRetrieved        = "order requests retrieved successfully"
	MsgOrderStatusChanged     = "order status updated successfully"
	MsgApplicationSubmitted   = "application submitted successfully"
	MsgApplicationWithdrawn   = "application withdrawn successfully"
	MsgApplicationDecided     = "application decided successfully"
	MsgApplicationDeleted     = "accepted application deleted successfully"
	MsgApplicationRetrieved   = "application retrieved successfully"
	MsgApplicationsRetrieved  = "applications retrieved successfully"
	MsgWorkItemSubmitted      = "work item submitted successfully"
	MsgWorkItemDecided        = "work item decided successfully"
	MsgWorkItemRetrieved      = "work item retrieved successfully"
)

const ResponseCodeSuccess = "success"
