package i18n

// Translation keys used by the widget.
const (
	KeyHotelAll             = "hotel.all"
	KeyHotelSelect          = "hotel.select"
	KeyHotelNoResults       = "hotel.no_results"
	KeyDateChooseCheckout   = "date.choose_checkout"
	KeySelectCheckin        = "calendar.select_checkin"
	KeySelectCheckout       = "calendar.select_checkout"
	KeyNightSelected        = "calendar.night_selected"
	KeyNightsSelected       = "calendar.nights_selected"
	KeyNight                = "calendar.night"
	KeyNights               = "calendar.nights"
	KeyToday                = "calendar.today"
	KeyTomorrow             = "calendar.tomorrow"
	KeyNextWeek             = "calendar.next_week"
	KeyNextMonth            = "calendar.next_month"
	KeyAdult                = "occupancy.adult"
	KeyAdults               = "occupancy.adults"
	KeyChild                = "occupancy.child"
	KeyChildren             = "occupancy.children"
	KeyRoom                 = "occupancy.room"
	KeyRooms                = "occupancy.rooms"
	KeySearchLoading        = "search.loading"
	KeyAlertDates           = "alert.dates"
	KeyAlertHotel           = "alert.hotel"
	KeyCheckoutAfterCheckin = "validation.checkout_after_checkin"
	KeyDateOutOfRange       = "validation.date_out_of_range"
	KeyMaxGuestsExceeded    = "validation.max_guests_exceeded"
	KeyMaxRoomsReached      = "validation.max_rooms_reached"
	KeyLastRoom             = "validation.last_room"
	KeyNotAvailable         = "availability.not_available"
	KeyCheckFailed          = "availability.check_failed"
	KeySearchInProgress     = "availability.in_progress"
)

var catalog = map[string]map[string]string{
	"en": {
		KeyHotelAll:             "All Hotels",
		KeyHotelSelect:          "Select Hotel",
		KeyHotelNoResults:       "No results available",
		KeyDateChooseCheckout:   "Select checkout",
		KeySelectCheckin:        "Select your check-in date",
		KeySelectCheckout:       "Now select your check-out date",
		KeyNightSelected:        "night selected",
		KeyNightsSelected:       "nights selected",
		KeyNight:                "night",
		KeyNights:               "nights",
		KeyToday:                "Today",
		KeyTomorrow:             "Tomorrow",
		KeyNextWeek:             "Next Week",
		KeyNextMonth:            "Next Month",
		KeyAdult:                "adult",
		KeyAdults:               "adults",
		KeyChild:                "child",
		KeyChildren:             "children",
		KeyRoom:                 "room",
		KeyRooms:                "rooms",
		KeySearchLoading:        "Searching...",
		KeyAlertDates:           "Please select check-in and check-out dates",
		KeyAlertHotel:           "Please select a hotel",
		KeyCheckoutAfterCheckin: "Check-out date must be after check-in date",
		KeyDateOutOfRange:       "The selected date is not available",
		KeyMaxGuestsExceeded:    "Maximum number of guests per room exceeded",
		KeyMaxRoomsReached:      "Maximum number of rooms reached",
		KeyLastRoom:             "At least one room is required",
		KeyNotAvailable:         "No availability for the selected dates",
		KeyCheckFailed:          "Unable to check availability. Redirecting anyway...",
		KeySearchInProgress:     "A search is already in progress",
	},
	"es": {
		KeyHotelAll:             "Todos los Hoteles",
		KeyHotelSelect:          "Seleccionar Hotel",
		KeyHotelNoResults:       "No hay resultados disponibles",
		KeyDateChooseCheckout:   "Elegir salida",
		KeySelectCheckin:        "Selecciona tu fecha de entrada",
		KeySelectCheckout:       "Ahora selecciona tu fecha de salida",
		KeyNightSelected:        "noche seleccionada",
		KeyNightsSelected:       "noches seleccionadas",
		KeyNight:                "noche",
		KeyNights:               "noches",
		KeyToday:                "Hoy",
		KeyTomorrow:             "Mañana",
		KeyNextWeek:             "Próxima Semana",
		KeyNextMonth:            "Próximo Mes",
		KeyAdult:                "adulto",
		KeyAdults:               "adultos",
		KeyChild:                "niño",
		KeyChildren:             "niños",
		KeyRoom:                 "habitación",
		KeyRooms:                "habitaciones",
		KeySearchLoading:        "Buscando...",
		KeyAlertDates:           "Por favor, selecciona las fechas de entrada y salida",
		KeyAlertHotel:           "Por favor, selecciona hotel",
		KeyCheckoutAfterCheckin: "La fecha de salida debe ser posterior a la fecha de entrada",
		KeyDateOutOfRange:       "La fecha seleccionada no está disponible",
		KeyMaxGuestsExceeded:    "Se ha excedido el número máximo de huéspedes por habitación",
		KeyMaxRoomsReached:      "Se ha alcanzado el número máximo de habitaciones",
		KeyLastRoom:             "Se requiere al menos una habitación",
		KeyNotAvailable:         "No hay disponibilidad para las fechas seleccionadas",
		KeyCheckFailed:          "No se pudo verificar la disponibilidad. Redirigiendo de todas formas...",
		KeySearchInProgress:     "Ya hay una búsqueda en curso",
	},
}

var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

var weekdayNames = map[string][7]string{
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	"es": {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
}
