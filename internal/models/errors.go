package models

import "errors"

// Ошибки доменного уровня. Обработчики сопоставляют их с HTTP-статусами
// через errors.Is: нарушение бизнес-правила — это не сбой системы,
// вызывающая сторона должна отличать одно от другого.
var (
	// ErrProductNotFound продукт с указанным ID отсутствует в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrUserNotFound пользователь с указанным email или ID не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrCouponNotFound купон с указанным кодом отсутствует.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrCouponExpired срок действия купона истёк.
	ErrCouponExpired = errors.New("coupon expired")
	// ErrSelfInteraction владелец пытается голосовать или жаловаться на свой продукт.
	ErrSelfInteraction = errors.New("owner cannot act on own product")
	// ErrAlreadyActed пользователь уже голосовал или жаловался на этот продукт.
	ErrAlreadyActed = errors.New("principal already acted on this product")
	// ErrQuotaExceeded пользователь без подписки уже опубликовал продукт.
	ErrQuotaExceeded = errors.New("submission quota exceeded")
	// ErrOwnerNotRegistered для email владельца нет учётной записи.
	ErrOwnerNotRegistered = errors.New("owner is not registered")
	// ErrInvalidRole роль не входит в список допустимых.
	ErrInvalidRole = errors.New("invalid role")
)
