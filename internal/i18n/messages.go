package i18n

var catalog = map[string]map[string]string{
	LocaleZH: messagesZH,
	LocaleTW: messagesTW,
	LocaleEN: messagesEN,
}

var messagesZH = map[string]string{
	"common.ok": "成功",

	"error.bad_request":            "请求参数错误",
	"error.not_found":              "资源不存在",
	"error.internal":               "服务器内部错误",
	"error.rate_limited":           "请求过于频繁，请 %d 秒后再试",
	"error.rate_limit_unavailable": "限流服务暂不可用",
	"error.export_format_invalid":  "导出格式不支持",
	"error.config_fetch_failed":    "获取站点配置失败",
	"error.email_invalid":          "邮箱格式不正确",
	"error.slug_exists":            "别名已存在",

	"error.captcha_required":        "请完成验证码",
	"error.captcha_invalid":         "验证码错误",
	"error.captcha_unavailable":     "验证码服务暂不可用",
	"error.captcha_generate_failed": "验证码生成失败",

	"error.consultation_code_invalid":            "咨询码参数不合法",
	"error.consultation_code_format_invalid":     "咨询码格式不正确",
	"error.consultation_code_not_found":          "咨询码不存在",
	"error.consultation_code_exists":             "咨询码已存在",
	"error.consultation_code_fetch_failed":       "获取咨询码失败",
	"error.consultation_code_create_failed":      "创建咨询码失败",
	"error.consultation_code_update_failed":      "更新咨询码失败",
	"error.consultation_code_delete_failed":      "删除咨询码失败",
	"error.consultation_code_generate_failed":    "生成咨询码失败，请稍后重试",
	"error.consultation_code_bulk_count_invalid": "批量生成数量不合法",
	"error.consultation_code_status_invalid":     "咨询码状态不合法",
	"error.consultation_code_unavailable":        "咨询码已不可用",
	"error.consultation_code_rejected":           "咨询码校验未通过：%s",

	"consultation.reason.required":    "请输入咨询码",
	"consultation.reason.not_found":   "咨询码不存在",
	"consultation.reason.inactive":    "咨询码已停用",
	"consultation.reason.expired":     "咨询码已过期",
	"consultation.reason.usage_limit": "咨询码已达到使用次数上限",
	"consultation.reason.valid":       "咨询码有效",

	"error.category_invalid":       "分类参数不合法",
	"error.category_not_found":     "分类不存在",
	"error.category_fetch_failed":  "获取分类失败",
	"error.category_create_failed": "创建分类失败",
	"error.category_update_failed": "更新分类失败",
	"error.category_delete_failed": "删除分类失败",
	"error.category_in_use":        "分类下仍有线路，无法删除",

	"error.tour_invalid":       "线路参数不合法",
	"error.tour_not_found":     "线路不存在",
	"error.tour_fetch_failed":  "获取线路失败",
	"error.tour_create_failed": "创建线路失败",
	"error.tour_update_failed": "更新线路失败",
	"error.tour_delete_failed": "删除线路失败",
	"error.tour_unavailable":   "线路暂不可预订",

	"error.tour_leader_invalid":       "领队参数不合法",
	"error.tour_leader_not_found":     "领队不存在",
	"error.tour_leader_fetch_failed":  "获取领队失败",
	"error.tour_leader_create_failed": "创建领队失败",
	"error.tour_leader_update_failed": "更新领队失败",
	"error.tour_leader_delete_failed": "删除领队失败",

	"error.expert_invalid":       "专家参数不合法",
	"error.expert_not_found":     "专家不存在",
	"error.expert_fetch_failed":  "获取专家失败",
	"error.expert_create_failed": "创建专家失败",
	"error.expert_update_failed": "更新专家失败",
	"error.expert_delete_failed": "删除专家失败",
	"error.expert_unavailable":   "专家暂不可预约",

	"error.booking_invalid":           "预订参数不合法",
	"error.booking_not_found":         "预订不存在",
	"error.booking_fetch_failed":      "获取预订失败",
	"error.booking_create_failed":     "创建预订失败",
	"error.booking_update_failed":     "更新预订失败",
	"error.booking_status_invalid":    "预订状态变更不合法",
	"error.booking_travelers_invalid": "出行人数不合法",

	"error.newsletter_subscribe_failed": "订阅失败",
	"error.newsletter_token_invalid":    "退订链接无效",
	"error.newsletter_fetch_failed":     "获取订阅列表失败",

	"error.inquiry_invalid":        "留言参数不合法",
	"error.inquiry_not_found":      "留言不存在",
	"error.inquiry_fetch_failed":   "获取留言失败",
	"error.inquiry_create_failed":  "提交留言失败",
	"error.inquiry_update_failed":  "更新留言失败",
	"error.inquiry_delete_failed":  "删除留言失败",
	"error.inquiry_status_invalid": "留言状态不合法",

	"email.booking_confirmation.subject": "预订确认 %s",
	"email.booking_confirmation.body":    "您好 %s，\n\n您的预订 %s 当前状态：%s。\n金额：%s %s\n出行日期：%s\n\n感谢您的选择。",
	"email.newsletter_welcome.subject":   "感谢订阅",
	"email.newsletter_welcome.body":      "您已成功订阅我们的旅行资讯。\n如需退订，请使用退订码：%s",
	"email.inquiry_notification.subject": "新的客户留言：%s",
	"email.inquiry_notification.body":    "姓名：%s\n邮箱：%s\n电话：%s\n\n%s",

	"booking.status.pending":   "待确认",
	"booking.status.confirmed": "已确认",
	"booking.status.canceled":  "已取消",
	"booking.status.completed": "已完成",
}

var messagesTW = map[string]string{
	"common.ok": "成功",

	"error.bad_request":            "請求參數錯誤",
	"error.not_found":              "資源不存在",
	"error.internal":               "伺服器內部錯誤",
	"error.rate_limited":           "請求過於頻繁，請 %d 秒後再試",
	"error.rate_limit_unavailable": "限流服務暫不可用",
	"error.export_format_invalid":  "匯出格式不支援",
	"error.config_fetch_failed":    "取得站點設定失敗",
	"error.email_invalid":          "信箱格式不正確",
	"error.slug_exists":            "別名已存在",

	"error.captcha_required":        "請完成驗證碼",
	"error.captcha_invalid":         "驗證碼錯誤",
	"error.captcha_unavailable":     "驗證碼服務暫不可用",
	"error.captcha_generate_failed": "驗證碼產生失敗",

	"error.consultation_code_invalid":            "諮詢碼參數不合法",
	"error.consultation_code_format_invalid":     "諮詢碼格式不正確",
	"error.consultation_code_not_found":          "諮詢碼不存在",
	"error.consultation_code_exists":             "諮詢碼已存在",
	"error.consultation_code_fetch_failed":       "取得諮詢碼失敗",
	"error.consultation_code_create_failed":      "建立諮詢碼失敗",
	"error.consultation_code_update_failed":      "更新諮詢碼失敗",
	"error.consultation_code_delete_failed":      "刪除諮詢碼失敗",
	"error.consultation_code_generate_failed":    "產生諮詢碼失敗，請稍後重試",
	"error.consultation_code_bulk_count_invalid": "批次產生數量不合法",
	"error.consultation_code_status_invalid":     "諮詢碼狀態不合法",
	"error.consultation_code_unavailable":        "諮詢碼已不可用",
	"error.consultation_code_rejected":           "諮詢碼驗證未通過：%s",

	"consultation.reason.required":    "請輸入諮詢碼",
	"consultation.reason.not_found":   "諮詢碼不存在",
	"consultation.reason.inactive":    "諮詢碼已停用",
	"consultation.reason.expired":     "諮詢碼已過期",
	"consultation.reason.usage_limit": "諮詢碼已達使用次數上限",
	"consultation.reason.valid":       "諮詢碼有效",

	"error.category_invalid":       "分類參數不合法",
	"error.category_not_found":     "分類不存在",
	"error.category_fetch_failed":  "取得分類失敗",
	"error.category_create_failed": "建立分類失敗",
	"error.category_update_failed": "更新分類失敗",
	"error.category_delete_failed": "刪除分類失敗",
	"error.category_in_use":        "分類下仍有行程，無法刪除",

	"error.tour_invalid":       "行程參數不合法",
	"error.tour_not_found":     "行程不存在",
	"error.tour_fetch_failed":  "取得行程失敗",
	"error.tour_create_failed": "建立行程失敗",
	"error.tour_update_failed": "更新行程失敗",
	"error.tour_delete_failed": "刪除行程失敗",
	"error.tour_unavailable":   "行程暫不可預訂",

	"error.tour_leader_invalid":       "領隊參數不合法",
	"error.tour_leader_not_found":     "領隊不存在",
	"error.tour_leader_fetch_failed":  "取得領隊失敗",
	"error.tour_leader_create_failed": "建立領隊失敗",
	"error.tour_leader_update_failed": "更新領隊失敗",
	"error.tour_leader_delete_failed": "刪除領隊失敗",

	"error.expert_invalid":       "專家參數不合法",
	"error.expert_not_found":     "專家不存在",
	"error.expert_fetch_failed":  "取得專家失敗",
	"error.expert_create_failed": "建立專家失敗",
	"error.expert_update_failed": "更新專家失敗",
	"error.expert_delete_failed": "刪除專家失敗",
	"error.expert_unavailable":   "專家暫不可預約",

	"error.booking_invalid":           "預訂參數不合法",
	"error.booking_not_found":         "預訂不存在",
	"error.booking_fetch_failed":      "取得預訂失敗",
	"error.booking_create_failed":     "建立預訂失敗",
	"error.booking_update_failed":     "更新預訂失敗",
	"error.booking_status_invalid":    "預訂狀態變更不合法",
	"error.booking_travelers_invalid": "出行人數不合法",

	"error.newsletter_subscribe_failed": "訂閱失敗",
	"error.newsletter_token_invalid":    "退訂連結無效",
	"error.newsletter_fetch_failed":     "取得訂閱列表失敗",

	"error.inquiry_invalid":        "留言參數不合法",
	"error.inquiry_not_found":      "留言不存在",
	"error.inquiry_fetch_failed":   "取得留言失敗",
	"error.inquiry_create_failed":  "送出留言失敗",
	"error.inquiry_update_failed":  "更新留言失敗",
	"error.inquiry_delete_failed":  "刪除留言失敗",
	"error.inquiry_status_invalid": "留言狀態不合法",

	"email.booking_confirmation.subject": "預訂確認 %s",
	"email.booking_confirmation.body":    "您好 %s，\n\n您的預訂 %s 目前狀態：%s。\n金額：%s %s\n出行日期：%s\n\n感謝您的選擇。",
	"email.newsletter_welcome.subject":   "感謝訂閱",
	"email.newsletter_welcome.body":      "您已成功訂閱我們的旅遊資訊。\n如需退訂，請使用退訂碼：%s",
	"email.inquiry_notification.subject": "新的客戶留言：%s",
	"email.inquiry_notification.body":    "姓名：%s\n信箱：%s\n電話：%s\n\n%s",

	"booking.status.pending":   "待確認",
	"booking.status.confirmed": "已確認",
	"booking.status.canceled":  "已取消",
	"booking.status.completed": "已完成",
}

var messagesEN = map[string]string{
	"common.ok": "success",

	"error.bad_request":            "Invalid request parameters",
	"error.not_found":              "Resource not found",
	"error.internal":               "Internal server error",
	"error.rate_limited":           "Too many requests, please retry in %d seconds",
	"error.rate_limit_unavailable": "Rate limiter is temporarily unavailable",
	"error.export_format_invalid":  "Unsupported export format",
	"error.config_fetch_failed":    "Failed to load site config",
	"error.email_invalid":          "Invalid email address",
	"error.slug_exists":            "Slug already exists",

	"error.captcha_required":        "Please complete the captcha",
	"error.captcha_invalid":         "Captcha is incorrect",
	"error.captcha_unavailable":     "Captcha service is temporarily unavailable",
	"error.captcha_generate_failed": "Failed to generate captcha",

	"error.consultation_code_invalid":            "Invalid consultation code parameters",
	"error.consultation_code_format_invalid":     "Consultation code format is invalid",
	"error.consultation_code_not_found":          "Consultation code not found",
	"error.consultation_code_exists":             "Consultation code already exists",
	"error.consultation_code_fetch_failed":       "Failed to load consultation code",
	"error.consultation_code_create_failed":      "Failed to create consultation code",
	"error.consultation_code_update_failed":      "Failed to update consultation code",
	"error.consultation_code_delete_failed":      "Failed to delete consultation code",
	"error.consultation_code_generate_failed":    "Failed to generate a unique consultation code, please retry",
	"error.consultation_code_bulk_count_invalid": "Invalid bulk generation count",
	"error.consultation_code_status_invalid":     "Invalid consultation code status",
	"error.consultation_code_unavailable":        "Consultation code is no longer available",
	"error.consultation_code_rejected":           "Consultation code rejected: %s",

	"consultation.reason.required":    "Please enter a consultation code",
	"consultation.reason.not_found":   "Consultation code not found",
	"consultation.reason.inactive":    "Consultation code is inactive",
	"consultation.reason.expired":     "Consultation code has expired",
	"consultation.reason.usage_limit": "Consultation code has reached its usage limit",
	"consultation.reason.valid":       "Consultation code is valid",

	"error.category_invalid":       "Invalid category parameters",
	"error.category_not_found":     "Category not found",
	"error.category_fetch_failed":  "Failed to load categories",
	"error.category_create_failed": "Failed to create category",
	"error.category_update_failed": "Failed to update category",
	"error.category_delete_failed": "Failed to delete category",
	"error.category_in_use":        "Category still has tours and cannot be deleted",

	"error.tour_invalid":       "Invalid tour parameters",
	"error.tour_not_found":     "Tour not found",
	"error.tour_fetch_failed":  "Failed to load tours",
	"error.tour_create_failed": "Failed to create tour",
	"error.tour_update_failed": "Failed to update tour",
	"error.tour_delete_failed": "Failed to delete tour",
	"error.tour_unavailable":   "Tour is not available for booking",

	"error.tour_leader_invalid":       "Invalid tour leader parameters",
	"error.tour_leader_not_found":     "Tour leader not found",
	"error.tour_leader_fetch_failed":  "Failed to load tour leaders",
	"error.tour_leader_create_failed": "Failed to create tour leader",
	"error.tour_leader_update_failed": "Failed to update tour leader",
	"error.tour_leader_delete_failed": "Failed to delete tour leader",

	"error.expert_invalid":       "Invalid expert parameters",
	"error.expert_not_found":     "Expert not found",
	"error.expert_fetch_failed":  "Failed to load experts",
	"error.expert_create_failed": "Failed to create expert",
	"error.expert_update_failed": "Failed to update expert",
	"error.expert_delete_failed": "Failed to delete expert",
	"error.expert_unavailable":   "Expert is not available for consultation",

	"error.booking_invalid":           "Invalid booking parameters",
	"error.booking_not_found":         "Booking not found",
	"error.booking_fetch_failed":      "Failed to load bookings",
	"error.booking_create_failed":     "Failed to create booking",
	"error.booking_update_failed":     "Failed to update booking",
	"error.booking_status_invalid":    "Invalid booking status transition",
	"error.booking_travelers_invalid": "Invalid number of travelers",

	"error.newsletter_subscribe_failed": "Failed to subscribe",
	"error.newsletter_token_invalid":    "Invalid unsubscribe token",
	"error.newsletter_fetch_failed":     "Failed to load subscribers",

	"error.inquiry_invalid":        "Invalid inquiry parameters",
	"error.inquiry_not_found":      "Inquiry not found",
	"error.inquiry_fetch_failed":   "Failed to load inquiries",
	"error.inquiry_create_failed":  "Failed to submit inquiry",
	"error.inquiry_update_failed":  "Failed to update inquiry",
	"error.inquiry_delete_failed":  "Failed to delete inquiry",
	"error.inquiry_status_invalid": "Invalid inquiry status",

	"email.booking_confirmation.subject": "Booking %s confirmation",
	"email.booking_confirmation.body":    "Hello %s,\n\nYour booking %s is now %s.\nAmount: %s %s\nTravel date: %s\n\nThank you for travelling with us.",
	"email.newsletter_welcome.subject":   "Thanks for subscribing",
	"email.newsletter_welcome.body":      "You are now subscribed to our travel newsletter.\nTo unsubscribe, use this token: %s",
	"email.inquiry_notification.subject": "New customer inquiry: %s",
	"email.inquiry_notification.body":    "Name: %s\nEmail: %s\nPhone: %s\n\n%s",

	"booking.status.pending":   "pending",
	"booking.status.confirmed": "confirmed",
	"booking.status.canceled":  "canceled",
	"booking.status.completed": "completed",
}
